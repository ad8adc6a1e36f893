// Package codec holds the byte codecs behind each bytes format: hex with an
// optional 0x prefix, padded base64 in the standard and URL-safe alphabets,
// and the element check for raw integer arrays.
//
// Decoders return errors matching ErrInvalidEncoding or ErrOutOfRange via
// errors.Is.
package codec
