package pixfx

import "testing"

func TestChannelOthers(t *testing.T) {
	tests := []struct {
		c    Channel
		want [2]Channel
	}{
		{Red, [2]Channel{Green, Blue}},
		{Green, [2]Channel{Red, Blue}},
		{Blue, [2]Channel{Red, Green}},
	}
	for _, tt := range tests {
		if got := tt.c.Others(); got != tt.want {
			t.Errorf("%v.Others() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in   string
		want Channel
	}{
		{"red", Red},
		{"RED", Red},
		{" g ", Green},
		{"2", Blue},
		{"Blue", Blue},
	}
	for _, tt := range tests {
		got, err := ParseChannel(tt.in)
		if err != nil {
			t.Errorf("ParseChannel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseChannel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseChannel("alpha"); err == nil {
		t.Error("ParseChannel(\"alpha\") error = nil, want error")
	}
}

func TestChannelString(t *testing.T) {
	if Red.String() != "red" || Green.String() != "green" || Blue.String() != "blue" {
		t.Errorf("channel names = %s/%s/%s", Red, Green, Blue)
	}
	if got := Channel(7).String(); got != "Channel(7)" {
		t.Errorf("Channel(7).String() = %q", got)
	}
	if Channel(3).Valid() {
		t.Error("Channel(3).Valid() = true")
	}
}
