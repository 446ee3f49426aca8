package adapters

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Login performs a best-effort storefront login so wholesale pricing becomes
// visible. It walks the login page for the form carrying a password input,
// carries over every hidden field, fills the credential fields by name and
// submits. Most product pages are public, so a failed login only degrades
// the data and is never fatal.
func (a *JKCabinetryAdapter) Login(ctx context.Context, email, password string) bool {
	loginPage := a.config.BaseURL + "/account/login"
	a.logger.Infof("Fetching login page %s", loginPage)

	// Always over plain HTTP so the session cookie lands in the shared jar
	body, err := a.httpClient.Get(ctx, loginPage)
	if err != nil {
		a.logger.Warnf("Failed to fetch login page: %v", err)
		return false
	}

	doc, err := a.ParseHTML(string(body))
	if err != nil {
		a.logger.Warnf("Failed to parse login page: %v", err)
		return false
	}

	var form *goquery.Selection
	doc.Find("form").EachWithBreak(func(i int, f *goquery.Selection) bool {
		if f.Find("input[type='password']").Length() > 0 {
			form = f
			return false
		}
		return true
	})
	if form == nil {
		a.logger.Info("No login form found, skipping authentication")
		return false
	}

	payload := url.Values{}
	form.Find("input").Each(func(i int, input *goquery.Selection) {
		name := input.AttrOr("name", "")
		if name == "" {
			return
		}
		payload.Set(name, input.AttrOr("value", ""))
	})

	insertedEmail, insertedPassword := false, false
	for key := range payload {
		lower := strings.ToLower(key)
		switch {
		case strings.Contains(lower, "email") || strings.Contains(lower, "username"):
			payload.Set(key, email)
			insertedEmail = true
		case strings.Contains(lower, "pass"):
			payload.Set(key, password)
			insertedPassword = true
		}
	}
	if !insertedEmail {
		payload.Set("email", email)
	}
	if !insertedPassword {
		payload.Set("password", password)
	}

	action := form.AttrOr("action", "/account/login")
	loginURL := a.AbsoluteURL(action)
	a.logger.Infof("Submitting login credentials to %s", loginURL)

	respBody, finalURL, err := a.httpClient.PostForm(ctx, loginURL, payload)
	if err != nil {
		a.logger.Warnf("Login request failed: %v", err)
		return false
	}

	if finalURL != loginURL {
		a.logger.Info("Login redirect detected, assuming success")
		return true
	}
	lower := strings.ToLower(string(respBody))
	if strings.Contains(lower, "logout") || strings.Contains(lower, "my account") {
		a.logger.Info("Logged in successfully")
		return true
	}

	a.logger.Warn("Login may not have succeeded")
	return false
}
