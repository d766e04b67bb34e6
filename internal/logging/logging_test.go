package logging

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		enabled int
		wantErr bool
	}{
		{"", 0, false},
		{"info", 0, false},
		{"debug", DEBUG, false},
		{"TRACE", TRACE, false},
		{"verbose", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, err := NewLogger(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLogger(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !log.V(tt.enabled).Enabled() {
				t.Errorf("V(%d) should be enabled at level %q", tt.enabled, tt.level)
			}
			if log.V(tt.enabled + 1).Enabled() {
				t.Errorf("V(%d) should be disabled at level %q", tt.enabled+1, tt.level)
			}
		})
	}
}

func TestNewTestLogger(t *testing.T) {
	log := NewTestLogger()
	if !log.V(TRACE).Enabled() {
		t.Error("test logger should enable trace verbosity")
	}
}
