package contentstream

import (
	"testing"
)

func TestParseSimpleOps(t *testing.T) {
	data := []byte("0.5 w 100 200 m 300 200 l S")

	ops, err := NewParser(data).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ops) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(ops))
	}

	if ops[0].Operator != "w" || ops[0].Float(0) != 0.5 {
		t.Errorf("unexpected op 0: %+v", ops[0])
	}
	if ops[1].Operator != "m" || ops[1].Float(0) != 100 || ops[1].Float(1) != 200 {
		t.Errorf("unexpected op 1: %+v", ops[1])
	}
	if ops[3].Operator != "S" || len(ops[3].Operands) != 0 {
		t.Errorf("unexpected op 3: %+v", ops[3])
	}
}

func TestParseRectangleAndTransform(t *testing.T) {
	data := []byte("q 1 0 0 1 50 50 cm 0 0 200 100 re f Q")

	ops, err := NewParser(data).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	var re *Operation
	for i := range ops {
		if ops[i].Operator == "re" {
			re = &ops[i]
		}
	}
	if re == nil {
		t.Fatal("re operator not found")
	}
	if re.Float(2) != 200 || re.Float(3) != 100 {
		t.Errorf("unexpected re operands: %+v", re.Operands)
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		want  string
		count int
	}{
		{"literal", "(BEDROOM 2) Tj", "BEDROOM 2", 1},
		{"nested parens", "(a (b) c) Tj", "a (b) c", 1},
		{"escapes", `(12\'-6\") Tj`, `12'-6"`, 1},
		{"octal", `(\101B) Tj`, "AB", 1},
		{"hex", "<48656C6C6F> Tj", "Hello", 1},
		{"odd hex", "<48656C6C6F2> Tj", "Hello ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewParser([]byte(tt.data)).Parse()
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(ops) != tt.count {
				t.Fatalf("expected %d ops, got %d", tt.count, len(ops))
			}
			if got := string(ops[0].Operands[0].Str); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseArrayOperand(t *testing.T) {
	data := []byte("[(3800) -250 (mm)] TJ")

	ops, err := NewParser(data).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ops) != 1 || ops[0].Operator != "TJ" {
		t.Fatalf("unexpected ops: %+v", ops)
	}

	arr := ops[0].Operands[0]
	if arr.Kind != KindArray || len(arr.Arr) != 3 {
		t.Fatalf("unexpected array operand: %+v", arr)
	}
	if string(arr.Arr[0].Str) != "3800" || arr.Arr[1].Float() != -250 {
		t.Errorf("unexpected array contents: %+v", arr.Arr)
	}
}

func TestParseNamesAndDicts(t *testing.T) {
	data := []byte("/GS1 gs BT /F1 10 Tf ET")

	ops, err := NewParser(data).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ops[0].Operator != "gs" || ops[0].Operands[0].Name != "GS1" {
		t.Errorf("unexpected gs op: %+v", ops[0])
	}
	if ops[2].Operator != "Tf" || ops[2].Operands[0].Name != "F1" || ops[2].Float(1) != 10 {
		t.Errorf("unexpected Tf op: %+v", ops[2])
	}
}

func TestSkipInlineImage(t *testing.T) {
	data := []byte("1 0 0 RG BI /W 2 /H 2 /BPC 8 ID \x00\xff\x80\x10 EI 10 20 m 30 40 l S")

	ops, err := NewParser(data).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// The inline image must vanish; the line afterwards must survive
	var found []string
	for _, op := range ops {
		found = append(found, op.Operator)
	}
	want := []string{"RG", "m", "l", "S"}
	if len(found) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, found)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Errorf("op %d: expected %s, got %s", i, want[i], found[i])
		}
	}
}

func TestParseComments(t *testing.T) {
	data := []byte("% generated by CAD export\n10 10 m 20 20 l S")

	ops, err := NewParser(data).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(ops) != 3 {
		t.Errorf("expected 3 ops, got %d", len(ops))
	}
}

func TestParseMalformedNumber(t *testing.T) {
	// A bare "." is a valid (zero) number per the PDF tolerance rules
	ops, err := NewParser([]byte(". 0 m")).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if ops[0].Float(0) != 0 {
		t.Errorf("expected 0, got %f", ops[0].Float(0))
	}
}
