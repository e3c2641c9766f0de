package verdict

import (
	"testing"
)

func TestLabelForClass(t *testing.T) {
	tests := []struct {
		class    int
		expected Label
		hasError bool
	}{
		{1, LabelSubscribe, false},
		{0, LabelNoSubscribe, false},
		{2, "", true},
		{-1, "", true},
	}

	for _, test := range tests {
		result, err := LabelForClass(test.class)
		if test.hasError && err == nil {
			t.Errorf("Expected error for class %d, but got none", test.class)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for class %d: %v", test.class, err)
		}
		if result != test.expected {
			t.Errorf("Expected %q, got %q", test.expected, result)
		}
	}
}

func TestVerdictDisplay(t *testing.T) {
	v := Verdict{Label: LabelSubscribe, Probability: 0.7321}
	if v.Percent() != "73.2%" {
		t.Errorf("Expected 73.2%%, got %s", v.Percent())
	}
	if v.Headline() != "The client is likely to subscribe to a term deposit." {
		t.Errorf("Unexpected headline: %s", v.Headline())
	}

	v.Label = LabelNoSubscribe
	if v.Label.Likely() {
		t.Error("Expected no_subscribe not to be likely")
	}
	if v.Headline() != "The client is NOT likely to subscribe." {
		t.Errorf("Unexpected headline: %s", v.Headline())
	}
}
