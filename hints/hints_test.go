package hints

import (
	"testing"
)

const loginHTML = `<html><body>
<form class="auth-form">
	<input type="email" placeholder="Email address">
	<input type="password" placeholder="Password">
	<input type="hidden" name="csrf" value="tok">
	<button type="submit" class="submit-btn primary wide">Sign In</button>
	<a class="switch-link" href="/register">Create a new account</a>
	<div role="checkbox" aria-label="Remember me" class="remember"></div>
</form>
</body></html>`

func TestExtractLoginForm(t *testing.T) {
	hs, err := Extract([]byte(loginHTML))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"input[type='email'][placeholder='Email address']": "Email address",
		"input[type='password'][placeholder='Password']":   "Password",
		"button[type='submit']":                            "Sign In",
		"a.switch-link":                                    "Create a new account",
		".remember":                                        "Remember me",
	}

	bySelector := map[string]Hint{}
	for _, h := range hs {
		bySelector[h.Selector] = h
	}

	for sel, label := range want {
		if sel == ".remember" {
			continue // checked below, selector differs
		}
		h, ok := bySelector[sel]
		if !ok {
			t.Errorf("missing hint for selector %q (got %v)", sel, selectors(hs))
			continue
		}
		if h.Label != label {
			t.Errorf("label for %q: got %q, want %q", sel, h.Label, label)
		}
	}

	// Hidden input must be skipped.
	for _, h := range hs {
		if h.Type == "hidden" {
			t.Errorf("hidden input leaked into hints: %+v", h)
		}
	}

	// ARIA checkbox is interactive even though it is a div.
	found := false
	for _, h := range hs {
		if h.Role == "checkbox" {
			found = true
			if h.Label != "Remember me" {
				t.Errorf("checkbox label: got %q", h.Label)
			}
			if h.Selector != "div.remember" {
				t.Errorf("checkbox selector: got %q, want %q", h.Selector, "div.remember")
			}
		}
	}
	if !found {
		t.Error("role=checkbox element not extracted")
	}
}

func TestExtractPrefersID(t *testing.T) {
	hs, err := Extract([]byte(`<button id="checkout" class="btn big">Checkout</button>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(hs) != 1 {
		t.Fatalf("hints: got %d, want 1", len(hs))
	}
	if hs[0].Selector != "#checkout" {
		t.Errorf("selector: got %q, want #checkout", hs[0].Selector)
	}
}

func TestExtractClassCap(t *testing.T) {
	hs, err := Extract([]byte(`<button class="a b c d">Go</button>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(hs) != 1 {
		t.Fatalf("hints: got %d, want 1", len(hs))
	}
	if hs[0].Selector != "button.a.b" {
		t.Errorf("selector: got %q, want button.a.b", hs[0].Selector)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	hs, err := Extract([]byte("<html><body><p>nothing to click</p></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if len(hs) != 0 {
		t.Errorf("hints in inert document: got %v", hs)
	}
}

func selectors(hs []Hint) []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Selector
	}
	return out
}
