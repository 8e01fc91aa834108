package util

import "strings"

const imageExt = ".jpg"

// NormalizeImagePath rewrites an image reference to the exported JPEG
// location: the extension is replaced by .jpg and one leading separator is
// dropped, so "/img/Bebidas/agua.png" becomes "img/Bebidas/agua.jpg".
func NormalizeImagePath(input string) string {
	ref := strings.TrimSpace(input)
	if ref == "" {
		return ""
	}

	ref = trimExt(ref)
	if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, `\`) {
		ref = ref[1:]
	}
	return ref + imageExt
}

// trimExt drops the extension of the last path element. Leading dots of the
// element (".hidden") are not an extension.
func trimExt(p string) string {
	base := p
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		base = p[i+1:]
	}
	stem := strings.TrimLeft(base, ".")
	dot := strings.LastIndex(stem, ".")
	if dot < 0 {
		return p
	}
	cut := len(base) - len(stem) + dot
	return p[:len(p)-len(base)+cut]
}
