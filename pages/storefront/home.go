package storefront

import (
	"context"

	"github.com/hazyhaar/pageproof/browser"
	"github.com/hazyhaar/pageproof/pom"
)

var homeLocators = pom.Locators{
	// Header search
	"search_input": "input[type='text'][placeholder='Search Products']",
	"search_icon":  ".search-cont .icon",

	// Header contact and account icons
	"contact_phone":      ".contact span",
	"user_account_icon":  ".social-icon-cont .headerIcon:nth-child(1) svg",
	"favorites_icon":     ".social-icon-cont .headerIcon:nth-child(2) svg",
	"shopping_cart_icon": ".social-icon-cont .headerIcon:nth-child(3) svg",

	// Navigation menu
	"nav_home":      ".anim-nav a[href='/']",
	"nav_shop":      ".anim-nav a[href='/store']",
	"nav_favorites": ".anim-nav a[href='/store/favs']",
	"nav_contact":   ".anim-nav a[href='#!']",

	// Banner call-to-action buttons
	"salad_shop_now":       ".content-sec-one .shop-now-btn button",
	"vegetables_shop_now":  ".content-section-two .shop-now-btn button",
	"week_frenzy_shop_now": ".content-section-three .shop-now-btn button",

	"logo": ".logo-search-cont img[alt='Logo']",
}

// HomePage is the page object for the storefront landing page.
type HomePage struct {
	*pom.Page
	baseURL string
}

// NewHomePage builds a home page object on sess.
func NewHomePage(sess *browser.Session, baseURL string, opts ...pom.Option) *HomePage {
	return &HomePage{
		Page:    pom.NewPage("Home", sess, homeLocators, opts...),
		baseURL: baseURL,
	}
}

// Open navigates to the site root.
func (p *HomePage) Open(ctx context.Context) error {
	return p.Page.Open(ctx, p.baseURL)
}

// SearchProduct types a query into the search box and submits it.
func (p *HomePage) SearchProduct(query string) error {
	if err := p.Type("search_input", query); err != nil {
		return err
	}
	return p.Click("search_icon")
}

// EnterSearchText fills the search box without submitting.
func (p *HomePage) EnterSearchText(text string) error {
	return p.Type("search_input", text)
}

// GoToShop opens the store section via the navigation menu.
func (p *HomePage) GoToShop() error {
	return p.Click("nav_shop")
}

// GoToFavorites opens the favorites list via the navigation menu.
func (p *HomePage) GoToFavorites() error {
	return p.Click("nav_favorites")
}

// OpenAccount clicks the user account icon in the header.
func (p *HomePage) OpenAccount() error {
	return p.Click("user_account_icon")
}

// OpenCart clicks the shopping cart icon in the header.
func (p *HomePage) OpenCart() error {
	return p.Click("shopping_cart_icon")
}

// ShopNowSalad clicks the Shop Now button in the main banner.
func (p *HomePage) ShopNowSalad() error {
	return p.Click("salad_shop_now")
}

// ContactPhone returns the phone number shown in the header.
func (p *HomePage) ContactPhone() (string, error) {
	return p.Text("contact_phone")
}
