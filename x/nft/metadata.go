package nft

import (
	"regexp"
	"unicode/utf8"

	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
)

const (
	// MetadataSpec is the metadata standard version this ledger implements.
	MetadataSpec = "nft-1.0.0"

	confPkg = "nft"

	maxTitleLen       = 256
	maxDescriptionLen = 4096
	maxURILen         = 2048
	maxSymbolLen      = 16
)

var isSpec = regexp.MustCompile(`^nft-[0-9]+\.[0-9]+\.[0-9]+$`).MatchString

// TokenMetadata describes a single token. All fields are optional.
type TokenMetadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	// Media is an URL of the associated media, preferably decentralized.
	Media string `json:"media,omitempty"`
}

// Validate returns an error if any of the fields is too long.
func (m *TokenMetadata) Validate() error {
	if err := maxLen(m.Title, maxTitleLen); err != nil {
		return errors.Wrap(err, "title")
	}
	if err := maxLen(m.Description, maxDescriptionLen); err != nil {
		return errors.Wrap(err, "description")
	}
	if err := maxLen(m.Media, maxURILen); err != nil {
		return errors.Wrap(err, "media")
	}
	return nil
}

// ContractMetadata describes the whole token collection. It is declared
// once in the genesis file under "conf" -> "nft".
type ContractMetadata struct {
	Spec      string `json:"spec"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Icon      string `json:"icon,omitempty"`
	BaseURI   string `json:"base_uri,omitempty"`
	Reference string `json:"reference,omitempty"`
}

var _ gconf.Configuration = (*ContractMetadata)(nil)

func (m *ContractMetadata) Validate() error {
	if !isSpec(m.Spec) {
		return errors.Wrapf(errors.ErrInput, "invalid spec %q", m.Spec)
	}
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if err := maxLen(m.Name, maxTitleLen); err != nil {
		return errors.Wrap(err, "name")
	}
	if m.Symbol == "" {
		return errors.Wrap(errors.ErrEmpty, "symbol")
	}
	if err := maxLen(m.Symbol, maxSymbolLen); err != nil {
		return errors.Wrap(err, "symbol")
	}
	if err := maxLen(m.Icon, maxURILen); err != nil {
		return errors.Wrap(err, "icon")
	}
	if err := maxLen(m.BaseURI, maxURILen); err != nil {
		return errors.Wrap(err, "base_uri")
	}
	if err := maxLen(m.Reference, maxURILen); err != nil {
		return errors.Wrap(err, "reference")
	}
	return nil
}

func (m *ContractMetadata) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

func (m *ContractMetadata) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, m); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// LoadContractMetadata returns the collection metadata. ErrNotFound is
// returned if none was declared in the genesis.
func LoadContractMetadata(db gconf.ReadStore) (*ContractMetadata, error) {
	var m ContractMetadata
	if err := gconf.Load(db, confPkg, &m); err != nil {
		return nil, errors.Wrap(err, "contract metadata")
	}
	return &m, nil
}

func maxLen(s string, n int) error {
	if l := utf8.RuneCountInString(s); l > n {
		return errors.Wrapf(errors.ErrInput, "%d characters, max %d", l, n)
	}
	return nil
}
