package porter2

import "testing"

func TestStep0(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dog's'", "dog"},
		{"dog's", "dog"},
		{"dogs'", "dogs"},
		{"dogs", "dogs"},
		{"'s", ""},
	}

	for _, tt := range tests {
		if got := string(step0([]byte(tt.input))); got != tt.expected {
			t.Errorf("step0(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStep1a(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"caresses", "caress"},
		{"ponies", "poni"},
		{"ties", "tie"},
		{"died", "die"},
		{"cried", "cri"},
		{"ies", "ie"},
		{"gas", "gas"},
		{"this", "this"},
		{"gaps", "gap"},
		{"kiwis", "kiwi"},
		{"consensus", "consensus"},
		{"class", "class"},
		{"s", "s"},
	}

	for _, tt := range tests {
		if got := string(step1a([]byte(tt.input))); got != tt.expected {
			t.Errorf("step1a(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStep1b(t *testing.T) {
	tests := []struct {
		input    string
		r1       int
		expected string
	}{
		{"agreed", 2, "agree"},
		{"feed", 4, "feed"},
		{"guaranteedly", 4, "guarantee"},
		{"speedly", 7, "speedly"},
		{"luxuriated", 3, "luxuriate"},
		{"hopping", 3, "hop"},
		{"hoped", 3, "hope"},
		{"sized", 3, "size"},
		{"fizzed", 3, "fizz"},
		{"motoring", 3, "motor"},
		{"sing", 4, "sing"},
		{"bled", 4, "bled"},
		{"exceedingly", 2, "exceed"},
	}

	for _, tt := range tests {
		if got := string(step1b([]byte(tt.input), tt.r1)); got != tt.expected {
			t.Errorf("step1b(%q, %d) = %q, want %q", tt.input, tt.r1, got, tt.expected)
		}
	}
}

func TestStep1c(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"cry", "cri"},
		{"by", "by"},
		{"say", "say"},
		{"happy", "happi"},
		{"enjoY", "enjoY"},
		{"replY", "repli"},
	}

	for _, tt := range tests {
		if got := string(step1c([]byte(tt.input))); got != tt.expected {
			t.Errorf("step1c(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestStep2(t *testing.T) {
	tests := []struct {
		input    string
		r1       int
		expected string
	}{
		{"relational", 2, "relate"},
		{"conditional", 3, "condition"},
		{"analogi", 2, "analog"},
		{"strategi", 3, "strategi"},
		{"cheerli", 5, "cheer"},
		{"bluli", 3, "bluli"},
		{"ational", 2, "ational"},
		{"vietnamization", 3, "vietnamize"},
		// a matching suffix ends the search even when its condition fails
		{"rational", 2, "rational"},
		{"gentli", 3, "gentli"},
		{"pedagogi", 2, "pedagogi"},
	}

	for _, tt := range tests {
		if got := string(step2([]byte(tt.input), tt.r1)); got != tt.expected {
			t.Errorf("step2(%q, %d) = %q, want %q", tt.input, tt.r1, got, tt.expected)
		}
	}
}

func TestStep3(t *testing.T) {
	tests := []struct {
		input    string
		r1, r2   int
		expected string
	}{
		{"triplicate", 4, 6, "triplic"},
		{"formative", 3, 4, "form"},
		{"formative", 3, 6, "formative"},
		{"creative", 4, 6, "creative"},
		{"hopeful", 3, 5, "hope"},
		{"goodness", 4, 6, "good"},
	}

	for _, tt := range tests {
		if got := string(step3([]byte(tt.input), tt.r1, tt.r2)); got != tt.expected {
			t.Errorf("step3(%q, %d, %d) = %q, want %q", tt.input, tt.r1, tt.r2, got, tt.expected)
		}
	}
}

func TestStep4(t *testing.T) {
	tests := []struct {
		input    string
		r2       int
		expected string
	}{
		{"revival", 5, "reviv"},
		{"adoption", 5, "adopt"},
		{"mission", 7, "mission"},
		{"replacement", 6, "replac"},
		{"cement", 6, "cement"},
		{"fashion", 4, "fashion"},
	}

	for _, tt := range tests {
		if got := string(step4([]byte(tt.input), tt.r2)); got != tt.expected {
			t.Errorf("step4(%q, %d) = %q, want %q", tt.input, tt.r2, got, tt.expected)
		}
	}
}

func TestStep5(t *testing.T) {
	tests := []struct {
		input    string
		r1, r2   int
		expected string
	}{
		{"controll", 3, 6, "control"},
		{"roll", 3, 4, "roll"},
		{"probate", 3, 5, "probat"},
		{"rate", 3, 4, "rate"},
		{"cease", 4, 5, "ceas"},
		{"hope", 3, 4, "hope"},
	}

	for _, tt := range tests {
		if got := string(step5([]byte(tt.input), tt.r1, tt.r2)); got != tt.expected {
			t.Errorf("step5(%q, %d, %d) = %q, want %q", tt.input, tt.r1, tt.r2, got, tt.expected)
		}
	}
}
