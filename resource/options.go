// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package resource

import (
	"errors"
	"fmt"
)

// CommentPolicy controls which comment metadata writers emit.
type CommentPolicy int

const (
	// CommentsFull emits the item's own comment and, for PO, the generated
	// original-message and source-reference comments.
	CommentsFull CommentPolicy = iota
	// CommentsSourceOnly emits only comments that existed in the source file.
	CommentsSourceOnly
	// CommentsNone suppresses every per-item comment. File headers are unaffected.
	CommentsNone
)

var errUnknownCommentPolicy = errors.New("unknown comment policy")

// String returns the configuration spelling of the policy.
func (p CommentPolicy) String() string {
	switch p {
	case CommentsFull:
		return "full"
	case CommentsSourceOnly:
		return "source-only"
	case CommentsNone:
		return "none"
	default:
		return fmt.Sprintf("CommentPolicy(%d)", int(p))
	}
}

// ParseCommentPolicy parses "full", "source-only" or "none".
func ParseCommentPolicy(s string) (CommentPolicy, error) {
	switch s {
	case "full", "":
		return CommentsFull, nil
	case "source-only", "source-comments-only":
		return CommentsSourceOnly, nil
	case "none", "no-comments":
		return CommentsNone, nil
	default:
		return CommentsFull, fmt.Errorf("%w: %q", errUnknownCommentPolicy, s)
	}
}

// Options is passed by value to every reader and writer.
type Options struct {
	Comments CommentPolicy

	// FormatFlags asks PO writers to annotate values containing placeholders
	// with csharp-format or innosetup-format flags. Advisory only.
	FormatFlags bool
}

// OwnComments reports whether comments that came from the source may be written.
func (o Options) OwnComments() bool {
	return o.Comments != CommentsNone
}

// GeneratedComments reports whether generated provenance comments may be written.
func (o Options) GeneratedComments() bool {
	return o.Comments == CommentsFull
}
