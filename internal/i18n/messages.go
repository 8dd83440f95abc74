// Package i18n provides the localized user-facing messages emitted by the
// HTTP layer. Error codes stay stable and machine-readable; only the
// human-readable message varies by language.
//
// The form ships to a Polish-speaking audience, so Polish is the default
// language; English is served when the Accept-Language header prefers it.
package i18n

import "golang.org/x/text/language"

// Key identifies one user-facing message independent of language.
type Key string

const (
	MsgEmailInvalid     Key = "email_invalid"
	MsgFileMissing      Key = "file_missing"
	MsgFileNotPDF       Key = "file_not_pdf"
	MsgFileTooLarge     Key = "file_too_large"
	MsgCaptchaRequired  Key = "captcha_required"
	MsgCaptchaFailed    Key = "captcha_failed"
	MsgAlreadySubmitted Key = "already_submitted"
	MsgUploadFailed     Key = "upload_failed"
	MsgSaveFailed       Key = "save_failed"
	MsgUnexpected       Key = "unexpected"
	MsgSubmitted        Key = "submitted"
)

// supported lists the languages we have catalogs for; the first entry is the
// fallback when matching fails.
var supported = []language.Tag{
	language.Polish,
	language.English,
}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[Key]string{
	language.Polish: {
		MsgEmailInvalid:     "Wprowadź prawidłowy adres email",
		MsgFileMissing:      "Wybierz plik PDF do przesłania",
		MsgFileNotPDF:       "Tylko pliki PDF są akceptowane",
		MsgFileTooLarge:     "Plik jest za duży. Maksymalny rozmiar to 15MB",
		MsgCaptchaRequired:  "Potwierdź, że nie jesteś robotem",
		MsgCaptchaFailed:    "Weryfikacja nie powiodła się. Spróbuj ponownie",
		MsgAlreadySubmitted: "Formularz został już wysłany z tego adresu IP",
		MsgUploadFailed:     "Nie udało się przesłać pliku",
		MsgSaveFailed:       "Wystąpił błąd podczas zapisywania zgłoszenia",
		MsgUnexpected:       "Wystąpił nieoczekiwany błąd",
		MsgSubmitted:        "Twój dokument został pomyślnie przesłany",
	},
	language.English: {
		MsgEmailInvalid:     "Enter a valid email address",
		MsgFileMissing:      "Select a PDF file to upload",
		MsgFileNotPDF:       "Only PDF files are accepted",
		MsgFileTooLarge:     "The file is too large. The maximum size is 15MB",
		MsgCaptchaRequired:  "Confirm that you are not a robot",
		MsgCaptchaFailed:    "Verification failed. Please try again",
		MsgAlreadySubmitted: "The form has already been submitted from this IP address",
		MsgUploadFailed:     "The file could not be uploaded",
		MsgSaveFailed:       "An error occurred while saving the submission",
		MsgUnexpected:       "An unexpected error occurred",
		MsgSubmitted:        "Your document has been submitted successfully",
	},
}

// Match resolves an Accept-Language header value to a supported language tag.
// An empty or unparsable header yields the default (Polish).
func Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return supported[0]
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// T returns the message for key in the given language, falling back to the
// default language (and to the key itself for unknown keys, so a missing
// catalog entry never yields an empty user-facing string).
func T(tag language.Tag, key Key) string {
	if cat, ok := catalogs[tag]; ok {
		if msg, ok := cat[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[supported[0]][key]; ok {
		return msg
	}
	return string(key)
}
