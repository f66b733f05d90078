// internal/fixedpoint/codec.go
package fixedpoint

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// Size is the length of an encoded Number: u128 raw followed by i32 scale.
const Size = 16 + 4

// MarshalWithEncoder writes the Borsh layout (little endian).
func (n Number) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := enc.WriteUint128(n.raw, binary.LittleEndian); err != nil {
		return fmt.Errorf("write raw: %w", err)
	}
	if err := enc.WriteInt32(n.scale, binary.LittleEndian); err != nil {
		return fmt.Errorf("write scale: %w", err)
	}
	return nil
}

// UnmarshalWithDecoder reads the Borsh layout (little endian).
func (n *Number) UnmarshalWithDecoder(dec *bin.Decoder) error {
	raw, err := dec.ReadUint128(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("read raw: %w", err)
	}

	scale, err := dec.ReadInt32(binary.LittleEndian)
	if err != nil {
		return fmt.Errorf("read scale: %w", err)
	}

	n.raw = bin.Uint128{Lo: raw.Lo, Hi: raw.Hi}
	n.scale = scale
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (n Number) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(Size)

	if err := n.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
// data must be exactly Size bytes long.
func (n *Number) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidInput, Size, len(data))
	}

	return n.UnmarshalWithDecoder(bin.NewBorshDecoder(data))
}
