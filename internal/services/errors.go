package services

import "errors"

var (
	// ErrNotOwner means the authenticated user does not own the media
	ErrNotOwner = errors.New("not the owner of this media")
	// ErrUpstream means a storage provider call failed
	ErrUpstream = errors.New("storage provider request failed")
)
