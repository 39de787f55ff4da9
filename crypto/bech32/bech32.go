package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/ledger/errors"
)

// AddressLength is the payload length of a bech32 encoded account address.
const AddressLength = 20

// Decode converts given bech32 encoded representation into raw payload and a
// human readable part.
func Decode(raw string) (string, []byte, error) {
	hrp, payload, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "bech32 decode: %s", err)
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	return hrp, payload, nil
}

// Encode converts given bytes into bech32 encoded representation.
func Encode(hrp string, payload []byte) ([]byte, error) {
	payload, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "convert bits: %s", err)
	}
	raw, err := bech32.Encode(hrp, payload)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "bech32 encode: %s", err)
	}
	return []byte(raw), nil
}

// DecodeAddress decodes a bech32 account address and ensures it carries an
// address of the expected length.
func DecodeAddress(raw string) (hrp string, addr []byte, err error) {
	hrp, addr, err = Decode(raw)
	if err != nil {
		return "", nil, err
	}
	if len(addr) != AddressLength {
		return "", nil, errors.Wrapf(errors.ErrInput, "address must be %d bytes, got %d", AddressLength, len(addr))
	}
	return hrp, addr, nil
}
