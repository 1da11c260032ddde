package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDurationForms(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"d: 10s", 10 * time.Second},
		{"d: 2m30s", 2*time.Minute + 30*time.Second},
		{"d: 45", 45 * time.Second},
		{"d: 0.5", 500 * time.Millisecond},
	}
	for _, tc := range cases {
		var v struct {
			D Duration `yaml:"d"`
		}
		if err := yaml.Unmarshal([]byte(tc.in), &v); err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if v.D.Std() != tc.want {
			t.Errorf("%q: got %v, want %v", tc.in, v.D.Std(), tc.want)
		}
	}
}

func TestDurationInvalid(t *testing.T) {
	var v struct {
		D Duration `yaml:"d"`
	}
	if err := yaml.Unmarshal([]byte("d: soon"), &v); err == nil {
		t.Error("invalid duration accepted")
	}
}
