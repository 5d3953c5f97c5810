package announcement

import "errors"

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrNotAuthor            = errors.New("announcement belongs to another author")
)
