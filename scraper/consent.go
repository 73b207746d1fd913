package scraper

// consentSelectors are CSS selectors for common consent-management
// platforms, tried in parallel with consentButtonTexts.
var consentSelectors = []string{
	"#onetrust-accept-btn-handler",
	"#CybotCookiebotDialogBodyLevelButtonLevelOptinAllowAll",
	"#CybotCookiebotDialogBodyButtonAccept",
	"button#L2AGLb",
	".fc-cta-consent",
	"[data-testid='uc-accept-all-button']",
	"button[aria-label*='Accept']",
	"button[aria-label*='accept']",
	".cc-allow",
	".cookie-consent-accept",
}

// consentButtonTexts are JS regexes matched against <button> text.
var consentButtonTexts = []string{
	`/^\s*(accept|agree|allow)( all)?( cookies)?\s*$/i`,
	`/^\s*(i agree|i accept|got it|ok(ay)?)\s*$/i`,
	`/^\s*(alle akzeptieren|tout accepter|aceptar todo|accetta tutto)\s*$/i`,
}
