package i18n

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		lang string
		want Language
	}{
		{"ko_KR.UTF-8", Korean},
		{"en_US.UTF-8", English},
		{"", English},
		{"ja_JP.UTF-8", English},
	}
	for _, tc := range cases {
		t.Run(tc.lang, func(t *testing.T) {
			t.Setenv("LANG", tc.lang)
			if got := Detect(); got != tc.want {
				t.Fatalf("Detect with LANG=%q = %v, want %v", tc.lang, got, tc.want)
			}
		})
	}
}

func TestParseOverrideWinsOverEnv(t *testing.T) {
	t.Setenv("LANG", "en_US.UTF-8")
	if got := Parse("ko"); got != Korean {
		t.Fatalf("Parse(ko) = %v, want Korean", got)
	}
	t.Setenv("LANG", "ko_KR.UTF-8")
	if got := Parse("en"); got != English {
		t.Fatalf("Parse(en) = %v, want English", got)
	}
	if got := Parse(""); got != Korean {
		t.Fatalf("Parse(empty) = %v, want env-detected Korean", got)
	}
}

func TestMessagesLanguage(t *testing.T) {
	en := ForLanguage(English)
	ko := ForLanguage(Korean)
	if en.SelectProject() == ko.SelectProject() {
		t.Fatal("catalogs identical across languages")
	}
	if ko.SelectProject() != "프로젝트 선택" {
		t.Fatalf("Korean SelectProject = %q", ko.SelectProject())
	}
}
