// CLAUDE:SUMMARY Page object for the storefront auth page: locator table plus login/navigation flows.
// Package storefront holds page objects for the demo storefront used by
// the example suites. The locator tables were authored from stored HTML
// snapshots of the live pages.
package storefront

import (
	"context"
	"strings"

	"github.com/hazyhaar/pageproof/browser"
	"github.com/hazyhaar/pageproof/pom"
)

// AuthPath is appended to the base URL to reach the login form.
const AuthPath = "auth"

var loginLocators = pom.Locators{
	"email_input":         "input[type='email'][placeholder='Email address']",
	"password_input":      "input[type='password'][placeholder='Password']",
	"sign_in_button":      "button[type='submit'].submit-btn",
	"create_account_link": "a.switch-link",
	"home_link":           "a.home-link",
	"logo":                ".auth-form-header img.logo",
	"header_title":        ".header-title",
	"auth_info":           ".auth-info",
}

// LoginPage is the page object for the storefront authentication page.
type LoginPage struct {
	*pom.Page
	baseURL string
}

// NewLoginPage builds a login page object on sess. baseURL is the site
// root; the auth path is appended on Open.
func NewLoginPage(sess *browser.Session, baseURL string, opts ...pom.Option) *LoginPage {
	return &LoginPage{
		Page:    pom.NewPage("Login", sess, loginLocators, opts...),
		baseURL: baseURL,
	}
}

// URL returns the full auth page URL.
func (p *LoginPage) URL() string {
	return strings.TrimSuffix(p.baseURL, "/") + "/" + AuthPath
}

// Open navigates to the auth page.
func (p *LoginPage) Open(ctx context.Context) error {
	return p.Page.Open(ctx, p.URL())
}

// OnLoginPage reports whether the session is still on the auth page.
func (p *LoginPage) OnLoginPage() (bool, error) {
	url, err := p.Session().CurrentURL()
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(url), AuthPath), nil
}

// Login fills in the credentials and submits the form.
func (p *LoginPage) Login(username, password string) error {
	if err := p.Type("email_input", username); err != nil {
		return err
	}
	if err := p.Type("password_input", password); err != nil {
		return err
	}
	return p.Click("sign_in_button")
}

// ClickCreateAccount follows the "create a new account" link.
func (p *LoginPage) ClickCreateAccount() error {
	return p.Click("create_account_link")
}

// ClickGoToHome follows the home link out of the auth page.
func (p *LoginPage) ClickGoToHome() error {
	return p.Click("home_link")
}

// HeaderTitle returns the auth form header text.
func (p *LoginPage) HeaderTitle() (string, error) {
	return p.Text("header_title")
}
