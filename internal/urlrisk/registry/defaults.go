package registry

import "phishshield/internal/urlrisk/lexical"

// Built-in reference data. Loaded registry files fall back to these lists for
// every section they omit.

var defaultTrustedDomains = []string{
	"google.com",
	"facebook.com",
	"amazon.com",
	"apple.com",
	"microsoft.com",
	"paypal.com",
	"netflix.com",
	"ebay.com",
	"instagram.com",
	"twitter.com",
	"linkedin.com",
	"yahoo.com",
	"github.com",
	"dropbox.com",
	"chase.com",
	"bankofamerica.com",
	"wellsfargo.com",
	"outlook.com",
	"office.com",
	"icloud.com",
	"adobe.com",
	"spotify.com",
	"whatsapp.com",
	"youtube.com",
	"wikipedia.org",
	"reddit.com",
	"walmart.com",
	"coinbase.com",
	"binance.com",
	"fedex.com",
}

var defaultBrandTokens = []string{
	"paypal",
	"amazon",
	"apple",
	"microsoft",
	"google",
	"facebook",
	"netflix",
	"ebay",
	"instagram",
	"linkedin",
	"twitter",
	"yahoo",
	"dropbox",
	"wellsfargo",
	"bankofamerica",
	"outlook",
	"office365",
	"icloud",
	"adobe",
	"coinbase",
	"binance",
	"fedex",
	"dhl",
	"usps",
	"spotify",
	"whatsapp",
	"github",
}

var defaultSuspiciousTLDs = []string{
	"tk", "ml", "ga", "cf", "gq",
	"info", "biz", "work", "click", "download",
	"win", "review", "top", "loan", "trade",
	"xyz", "zip", "country", "stream", "men",
}

var defaultSuspiciousKeywords = []string{
	"secure",
	"account",
	"login",
	"verify",
	"banking",
	"update",
	"confirm",
	"ebay",
	"paypal",
	"amazon",
	"netflix",
	"credit",
	"card",
	"password",
	"suspended",
	"blocked",
	"urgent",
	"immediate",
	"action",
	"required",
}

// defaultConfusables only holds non-ASCII code points. ASCII digit look-alikes
// (0 for o, 1 for l) are left to the edit-distance matcher.
var defaultConfusables = lexical.Confusables{
	// Cyrillic lowercase
	'а': 'a',
	'в': 'b',
	'е': 'e',
	'н': 'h',
	'і': 'i',
	'ј': 'j',
	'к': 'k',
	'м': 'm',
	'о': 'o',
	'р': 'p',
	'с': 'c',
	'т': 't',
	'у': 'y',
	'х': 'x',
	'ѕ': 's',
	'ԁ': 'd',
	'ԛ': 'q',
	'ԝ': 'w',
	'ӏ': 'l',

	// Cyrillic uppercase
	'А': 'a',
	'В': 'b',
	'С': 'c',
	'Е': 'e',
	'Н': 'h',
	'І': 'i',
	'Ј': 'j',
	'К': 'k',
	'М': 'm',
	'О': 'o',
	'Р': 'p',
	'Ѕ': 's',
	'Т': 't',
	'Х': 'x',

	// Greek
	'α': 'a',
	'ε': 'e',
	'ι': 'i',
	'κ': 'k',
	'ν': 'v',
	'ο': 'o',
	'ρ': 'p',
	'τ': 't',
	'υ': 'u',
	'Α': 'a',
	'Β': 'b',
	'Ε': 'e',
	'Ζ': 'z',
	'Η': 'h',
	'Ι': 'i',
	'Κ': 'k',
	'Μ': 'm',
	'Ν': 'n',
	'Ο': 'o',
	'Ρ': 'p',
	'Τ': 't',
	'Υ': 'y',
	'Χ': 'x',

	// Armenian
	'օ': 'o',
	'ս': 's',
	'հ': 'h',
	'ո': 'n',
	'ա': 'a',

	// Latin look-alikes outside ASCII
	'ı': 'i', // dotless i
	'ɩ': 'i',
	'ɡ': 'g',
	'ᴏ': 'o',
	'ᴄ': 'c',
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneConfusables(in lexical.Confusables) lexical.Confusables {
	out := make(lexical.Confusables, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
