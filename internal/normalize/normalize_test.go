package normalize

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"html entities", "화질이 &quot;좋아요&quot; &amp; 가볍네요", `화질이 "좋아요" & 가볍네요`},
		{"url stripped", "리뷰 https://example.com/watch?v=abc 참고", "리뷰 참고"},
		{"mention stripped", "@someuser 색감이 예쁘네요", "색감이 예쁘네요"},
		{"whitespace collapsed", "  노이즈가   심해요\n\n정말  ", "노이즈가 심해요 정말"},
		{"combined", "&lt;b&gt;AF&lt;/b&gt;  좋음 @cam_fan http://a.b/c", "<b>AF</b> 좋음"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIsDeterministic(t *testing.T) {
	in := "@user 저조도   노이즈 https://x.y &amp; 발열"
	first := Clean(in)
	for i := 0; i < 5; i++ {
		if got := Clean(in); got != first {
			t.Fatalf("Clean not deterministic: %q vs %q", got, first)
		}
	}
}
