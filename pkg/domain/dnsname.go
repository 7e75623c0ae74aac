package domain

import (
	"strings"

	dErrors "bicns/pkg/domain-errors"
)

const maxLabelBytes = 255

// EncodeName converts a dotted name to DNS wire format: each label prefixed by its
// byte length, terminated by a zero byte. The empty name encodes to a single zero.
func EncodeName(name string) ([]byte, error) {
	if name == "" {
		return []byte{0}, nil
	}
	labels := strings.Split(name, ".")
	out := make([]byte, 0, len(name)+2)
	for _, label := range labels {
		if label == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "name contains an empty label")
		}
		if len(label) > maxLabelBytes {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "label exceeds 255 bytes")
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}
	return append(out, 0), nil
}

// DecodeName converts DNS wire format back to a dotted name.
func DecodeName(encoded []byte) (string, error) {
	var labels []string
	offset := 0
	for {
		label, next, err := readLabel(encoded, offset)
		if err != nil {
			return "", err
		}
		if label == "" {
			if next != len(encoded) {
				return "", dErrors.New(dErrors.CodeInvalidInput, "trailing bytes after name terminator")
			}
			return strings.Join(labels, "."), nil
		}
		labels = append(labels, label)
		offset = next
	}
}

// ReadLabel returns the hash of the label at offset and the offset of the next label.
// Reading the terminator yields the zero hash.
func ReadLabel(encoded []byte, offset int) (LabelHash, int, error) {
	label, next, err := readLabel(encoded, offset)
	if err != nil {
		return LabelHash{}, 0, err
	}
	if label == "" {
		return LabelHash{}, next, nil
	}
	return HashLabel(label), next, nil
}

// FirstLabel splits an encoded name into its leftmost label and the offset at
// which the parent name starts.
func FirstLabel(encoded []byte) (string, int, error) {
	label, next, err := readLabel(encoded, 0)
	if err != nil {
		return "", 0, err
	}
	if label == "" {
		return "", 0, dErrors.New(dErrors.CodeInvalidInput, "name has no labels")
	}
	return label, next, nil
}

// NamehashEncoded computes the node of the encoded name starting at offset.
func NamehashEncoded(encoded []byte, offset int) (Node, error) {
	labelHash, next, err := ReadLabel(encoded, offset)
	if err != nil {
		return Node{}, err
	}
	if labelHash == (LabelHash{}) {
		if next != len(encoded) {
			return Node{}, dErrors.New(dErrors.CodeInvalidInput, "trailing bytes after name terminator")
		}
		return RootNode, nil
	}
	parent, err := NamehashEncoded(encoded, next)
	if err != nil {
		return Node{}, err
	}
	return MakeNode(parent, labelHash), nil
}

// AddLabel prepends label to an already encoded parent name.
func AddLabel(label string, parent []byte) ([]byte, error) {
	if label == "" || len(label) > maxLabelBytes {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "label must be 1-255 bytes")
	}
	if strings.Contains(label, ".") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "label contains a dot")
	}
	out := make([]byte, 0, len(label)+1+len(parent))
	out = append(out, byte(len(label)))
	out = append(out, label...)
	return append(out, parent...), nil
}

func readLabel(encoded []byte, offset int) (string, int, error) {
	if offset < 0 || offset >= len(encoded) {
		return "", 0, dErrors.New(dErrors.CodeInvalidInput, "encoded name truncated")
	}
	n := int(encoded[offset])
	if n == 0 {
		return "", offset + 1, nil
	}
	end := offset + 1 + n
	if end > len(encoded) {
		return "", 0, dErrors.New(dErrors.CodeInvalidInput, "encoded label overruns name")
	}
	label := string(encoded[offset+1 : end])
	if strings.Contains(label, ".") {
		return "", 0, dErrors.New(dErrors.CodeInvalidInput, "encoded label contains a dot")
	}
	return label, end, nil
}
