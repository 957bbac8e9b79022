package csvmonkey

import "testing"

func TestConfigNormalizeDefaults(t *testing.T) {
	cfg, err := Config{}.normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Delimiter != ',' {
		t.Errorf("Delimiter = %q, want ','", cfg.Delimiter)
	}
	if cfg.Window != DefaultWindow {
		t.Errorf("Window = %d, want %d", cfg.Window, DefaultWindow)
	}
}

func TestConfigRejectsDelimiterEqualsQuote(t *testing.T) {
	cfg := Config{Delimiter: ',', Quote: ','}
	if _, err := cfg.normalize(); err != ErrInvalidConfig {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigRejectsNewlineDelimiter(t *testing.T) {
	for _, cfg := range []Config{
		{Delimiter: '\n'},
		{Delimiter: '\r'},
		{Delimiter: ',', Quote: '\n'},
	} {
		if _, err := cfg.normalize(); err != ErrInvalidConfig {
			t.Errorf("cfg=%+v err = %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

func TestNewFromBytesInvalidConfig(t *testing.T) {
	cfg := Config{Delimiter: ',', Quote: ','}
	if _, err := NewFromBytes([]byte("a,b\n"), cfg); err != ErrInvalidConfig {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
