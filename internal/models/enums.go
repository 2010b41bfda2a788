package models

// MediaType is the kind of media a post carries.
type MediaType string

const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

func (m MediaType) Valid() bool {
	switch m {
	case MediaPhoto, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// Category groups posts by artistic period.
type Category string

const (
	CategoryAfricanHistory      Category = "africanhistory"
	CategoryContemporaryAfrican Category = "contemporaryafrican"
	CategoryNeoAfrican          Category = "neoafrican"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAfricanHistory, CategoryContemporaryAfrican, CategoryNeoAfrican:
		return true
	}
	return false
}

// Licensing is the license a post is published under.
type Licensing string

const (
	LicensingCreativeCommons Licensing = "creativecommons"
)

func (l Licensing) Valid() bool {
	return l == LicensingCreativeCommons
}
