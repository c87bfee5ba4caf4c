package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"cat.png", "cat.png"},
		{"assets/cat.png", "cat.png"},
		{"/home/me/game/assets/fatcat.png", "fatcat.png"},
		{"/tmp/badcat.png", "badcat.png"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := cleanAssetPath(tc.in); got != tc.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEmbeddedFiles(t *testing.T) {
	for _, name := range []string{"player.png", "cat.png", "badcat.png", "fatcat.png", "collect.wav", "bad.wav", "chonky.wav", "speed_up.wav", "game_over.wav"} {
		b, err := LoadFile(name)
		if err != nil || len(b) == 0 {
			t.Fatalf("LoadFile(%s): %v", name, err)
		}
	}
	if _, err := LoadFile("missing.png"); err == nil {
		t.Fatalf("expected error for missing asset")
	}
}
