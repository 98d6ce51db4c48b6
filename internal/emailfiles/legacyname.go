package emailfiles

import "strings"

// The retired deployment stored uploads in one flat directory named
// <originalStem>-<ownerID>-<fileID>.<ext>. The stem may itself contain dots
// and dashes, so decoding anchors on the last "-<ownerID>-" occurrence
// rather than splitting on separators. This codec exists only for importing
// such directories; live storage never encodes ownership into names.

// LegacyName holds the fields recovered from a legacy encoded filename.
type LegacyName struct {
	OriginalFilename string
	OwnerID          string
	FileID           string
	FileType         string
}

// EncodeLegacyName builds the legacy physical filename for a file.
func EncodeLegacyName(originalFilename, ownerID, fileID string) string {
	stem := originalFilename
	ext := ""
	if idx := strings.LastIndex(originalFilename, "."); idx >= 0 {
		stem = originalFilename[:idx]
		ext = originalFilename[idx+1:]
	}
	encoded := stem + "-" + ownerID + "-" + fileID
	if ext != "" {
		encoded += "." + strings.ToLower(ext)
	}
	return encoded
}

// DecodeLegacyName recovers the logical fields from an encoded name for a
// known owner. Returns false when the name does not belong to that owner.
func DecodeLegacyName(encoded, ownerID string) (LegacyName, bool) {
	ext := ""
	base := encoded
	if idx := strings.LastIndex(encoded, "."); idx >= 0 {
		base = encoded[:idx]
		ext = strings.ToLower(encoded[idx+1:])
	}

	marker := "-" + ownerID + "-"
	idx := strings.LastIndex(base, marker)
	if idx < 0 {
		return LegacyName{}, false
	}

	stem := base[:idx]
	fileID := base[idx+len(marker):]
	if stem == "" || fileID == "" {
		return LegacyName{}, false
	}

	original := stem
	if ext != "" {
		original += "." + ext
	}
	return LegacyName{
		OriginalFilename: original,
		OwnerID:          ownerID,
		FileID:           fileID,
		FileType:         ext,
	}, true
}

// MatchesLegacyName reports whether an encoded name refers to the given
// owner and file id. With the extension stripped, a match ends in "-<fileID>"
// and contains "-<ownerID>-" right before it.
func MatchesLegacyName(encoded, ownerID, fileID string) bool {
	base := encoded
	if idx := strings.LastIndex(encoded, "."); idx >= 0 {
		base = encoded[:idx]
	}
	return strings.HasSuffix(base, "-"+ownerID+"-"+fileID)
}
