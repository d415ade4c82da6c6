package bridge

import "github.com/PuerkitoBio/goquery"

// safeFind runs sel.Find(selector), absorbing the panic goquery/cascadia
// raise on an unparsable selector into an empty result. Selectors may
// originate from untrusted sandboxed code, so no core operation may ever
// let an invalid selector escape as an error or a crash.
func safeFind(sel *goquery.Selection, selector string, fallback *goquery.Selection) (result *goquery.Selection) {
	defer func() {
		if recover() != nil {
			result = fallback
		}
	}()
	return sel.Find(selector)
}

func safeClosest(sel *goquery.Selection, selector string, fallback *goquery.Selection) (result *goquery.Selection) {
	defer func() {
		if recover() != nil {
			result = fallback
		}
	}()
	return sel.Closest(selector)
}

func safeParentFiltered(sel *goquery.Selection, selector string, fallback *goquery.Selection) (result *goquery.Selection) {
	defer func() {
		if recover() != nil {
			result = fallback
		}
	}()
	return sel.ParentFiltered(selector)
}
