package hashid

import (
	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// ID is a string identifier paired with its precomputed hash. Comparisons
// only look at the hash.
type ID struct {
	Value string
	Hash  uint64
}

// New hashes value into an ID.
func New(value string) ID {
	return ID{Value: value, Hash: Hash(value)}
}

// Hash returns the hash used for id comparisons.
func Hash(value string) uint64 {
	return xxhash.Sum64String(value)
}

// Normalize recomputes the hash from Value. A zero ID becomes the hashed
// empty string.
func (id ID) Normalize() ID {
	return New(id.Value)
}

func (id ID) Equal(other ID) bool {
	return id.Hash == other.Hash
}

func (id ID) String() string {
	return id.Value
}

// IDs hashes every value in order.
func IDs(values ...string) []ID {
	out := make([]ID, 0, len(values))
	for _, v := range values {
		out = append(out, New(v))
	}
	return out
}

func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	*id = New(value)
	return nil
}

func (id ID) MarshalYAML() (any, error) {
	return id.Value, nil
}
