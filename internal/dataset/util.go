package dataset

import "innovata/internal/validation"

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// safeURL drops links with schemes other than http(s).
func safeURL(link string) string {
	if ok, _ := validation.ValidateURL(link); !ok {
		return ""
	}
	return link
}
