package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// BlockSize is the AES block size the transport layer works in.
const BlockSize = 16

// Transport constants shared with the companion application. Not secret:
// anyone with the firmware has them. Changing either breaks every deployed
// companion install.
var (
	TransportKey = []byte{
		0x4b, 0x6c, 0x75, 0x63, 0x68, 0x6e, 0x69, 0x6b,
		0x2d, 0x54, 0x52, 0x4e, 0x47, 0x2d, 0x76, 0x32,
	}
	TransportIV = []byte{
		0xff, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	}
)

var (
	ErrNotBlockAligned = errors.New("data length is not a multiple of the block size")
	ErrBadIVLength     = errors.New("iv must be exactly one block")
	ErrBadPadding      = errors.New("invalid PKCS7 padding")
)

// PadPKCS7 appends PKCS7 padding over BlockSize. Between 1 and BlockSize
// bytes are always added, each holding the pad length; block-aligned input
// gains one full padding block. The input slice is not modified.
func PadPKCS7(data []byte) []byte {
	padLen := BlockSize - len(data)%BlockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// UnpadPKCS7 strips PKCS7 padding, validating every pad byte.
func UnpadPKCS7(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, ErrBadPadding
	}
	padLen := int(data[len(data)-1])
	if padLen < 1 || padLen > BlockSize || padLen > len(data) {
		return nil, ErrBadPadding
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, ErrBadPadding
		}
	}
	return data[:len(data)-padLen], nil
}

// EncryptCBC encrypts block-aligned src with AES-128-CBC. The iv buffer is
// consumed as chaining state and holds the last ciphertext block on return:
// callers must pass a disposable copy, never TransportIV itself.
func EncryptCBC(src, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("transport cipher: %w", err)
	}
	if len(src)%BlockSize != 0 {
		return nil, ErrNotBlockAligned
	}
	if len(iv) != BlockSize {
		return nil, ErrBadIVLength
	}
	dst := make([]byte, len(src))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(dst, src)
	if len(dst) > 0 {
		copy(iv, dst[len(dst)-BlockSize:])
	}
	return dst, nil
}

// DecryptCBC reverses EncryptCBC. As with encryption the iv buffer is
// consumed and must be a disposable copy.
func DecryptCBC(src, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("transport cipher: %w", err)
	}
	if len(src)%BlockSize != 0 {
		return nil, ErrNotBlockAligned
	}
	if len(iv) != BlockSize {
		return nil, ErrBadIVLength
	}
	dst := make([]byte, len(src))
	var last [BlockSize]byte
	if len(src) > 0 {
		copy(last[:], src[len(src)-BlockSize:])
	}
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(dst, src)
	copy(iv, last[:])
	return dst, nil
}

// PadAndEncrypt is the device-side transport encode: PKCS7 then CBC under the
// fixed key with a fresh IV copy per call.
func PadAndEncrypt(plain []byte) ([]byte, error) {
	iv := append([]byte(nil), TransportIV...)
	return EncryptCBC(PadPKCS7(plain), TransportKey, iv)
}

// DecryptAndUnpad is the companion-side transport decode.
func DecryptAndUnpad(ciphertext []byte) ([]byte, error) {
	iv := append([]byte(nil), TransportIV...)
	plain, err := DecryptCBC(ciphertext, TransportKey, iv)
	if err != nil {
		return nil, err
	}
	return UnpadPKCS7(plain)
}
