package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want Tag
	}{
		{"https://github.com/x/y", CodeHost},
		{"https://gist.github.com/someone/abc", CodeHost},
		{"https://gitlab.com/group/project/-/blob/main/README.md", CodeHost},
		{"github.com/x/y", CodeHost},
		{"https://stackoverflow.com/q/1", QAForum},
		{"https://unix.stackexchange.com/questions/42", QAForum},
		{"https://askubuntu.com/questions/7", QAForum},
		{"https://docs.readthedocs.io/x", Docs},
		{"https://requests.readthedocs.io/en/latest/", Docs},
		{"https://docs.python.org/3/library/os.html", Docs},
		{"https://kubernetes.io/docs/concepts/", Docs},
		{"https://pkg.go.dev/net/http", Docs},
		{"https://example.com", Generic},
		{"https://example.com/blog/post", Generic},
		{"https://notgithub.com/x", Generic},
		{"", Generic},
		{"::not a url::", Generic},
		{"%zz", Generic},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// A docs path on a code host is still a code host.
	if got := Classify("https://github.com/org/repo/tree/main/docs"); got != CodeHost {
		t.Errorf("expected CodeHost to win over Docs, got %q", got)
	}
	// A docs path on a Q&A host is still a Q&A page.
	if got := Classify("https://stackoverflow.com/docs/foo"); got != QAForum {
		t.Errorf("expected QAForum to win over Docs, got %q", got)
	}
}

func TestClassify_DeterministicAndTotal(t *testing.T) {
	urls := []string{
		"https://github.com/x/y", "https://stackoverflow.com/q/1",
		"https://docs.readthedocs.io/x", "https://example.com", "", "\x00",
	}
	valid := make(map[Tag]bool, len(Tags))
	for _, tag := range Tags {
		valid[tag] = true
	}

	for _, u := range urls {
		first := Classify(u)
		if !valid[first] {
			t.Errorf("Classify(%q) returned unknown tag %q", u, first)
		}
		for i := 0; i < 5; i++ {
			if again := Classify(u); again != first {
				t.Errorf("Classify(%q) not deterministic: %q then %q", u, first, again)
			}
		}
	}
}
