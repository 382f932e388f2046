// Package codec implements the persisted-state encoding of spec §6: a
// serialized private key is the concatenation of the four signed trapdoor
// polynomials (f, g, F, G) at the bit widths spec §6 derives from (N, q),
// and a serialized public key is N unsigned coefficients of width
// ceil(log2 q). Bit-packing is big-endian within each coefficient,
// coefficients in ascending index order; there is no framing or magic
// bytes, matching spec §6's "No framing or magic bytes are part of this
// specification."
package codec

import (
	"math"
	"math/big"

	"github.com/latticecore/gpvcore/errs"
	"github.com/latticecore/gpvcore/gpv"
	"github.com/latticecore/gpvcore/ring"
)

// widths returns (q_bits1, q_bits2) as spec §6 defines them:
// q_bits1 = 1 + ceil(log2(6*1.17*sqrt(q/(2N)))) for (f, g), signed, and
// q_bits2 = q_bits1 + 5 for (F, G), signed.
func widths(params *ring.Params) (int, int) {
	qFloat, _ := new(big.Float).SetInt(params.Q).Float64()
	bound := 6 * 1.17 * math.Sqrt(qFloat/float64(2*params.N))
	qBits1 := 1 + int(math.Ceil(math.Log2(bound)))
	return qBits1, qBits1 + 5
}

// publicWidth returns the unsigned coefficient width of the public key,
// ceil(log2 q).
func publicWidth(params *ring.Params) int {
	return params.Q.BitLen()
}

// EncodeSecretKey packs (f, g, F, G) at the widths spec §6 prescribes, in
// that order, each polynomial's N coefficients in ascending index order.
func EncodeSecretKey(params *ring.Params, sk *gpv.SecretKey) ([]byte, error) {
	const op = "codec.EncodeSecretKey"
	if params == nil || sk == nil {
		return nil, errs.New(errs.InvalidInput, op+": nil params or key")
	}
	wSmall, wBig := widths(params)

	w := newBitWriter()
	for _, poly := range []ring.PolyZ{sk.SmallF(), sk.SmallG()} {
		if err := writeSigned(w, poly, wSmall, op); err != nil {
			return nil, err
		}
	}
	for _, poly := range []ring.PolyZ{sk.F, sk.G} {
		if err := writeSigned(w, poly, wBig, op); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// DecodeSecretKey is the inverse of EncodeSecretKey.
func DecodeSecretKey(params *ring.Params, buf []byte) (*gpv.SecretKey, error) {
	const op = "codec.DecodeSecretKey"
	if params == nil {
		return nil, errs.New(errs.InvalidInput, op+": nil params")
	}
	wSmall, wBig := widths(params)
	r := newBitReader(buf)

	f, err := readSigned(r, params.N, wSmall, op)
	if err != nil {
		return nil, err
	}
	g, err := readSigned(r, params.N, wSmall, op)
	if err != nil {
		return nil, err
	}
	f1, err := readSigned(r, params.N, wBig, op)
	if err != nil {
		return nil, err
	}
	g1, err := readSigned(r, params.N, wBig, op)
	if err != nil {
		return nil, err
	}
	return gpv.NewSecretKey(f, g, f1, g1), nil
}

// EncodePublicKey packs N unsigned coefficients of width ceil(log2 q).
func EncodePublicKey(params *ring.Params, pk *gpv.PublicKey) ([]byte, error) {
	const op = "codec.EncodePublicKey"
	if params == nil || pk == nil {
		return nil, errs.New(errs.InvalidInput, op+": nil params or key")
	}
	w := newBitWriter()
	if err := writeUnsigned(w, pk.H, publicWidth(params), op); err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// DecodePublicKey is the inverse of EncodePublicKey.
func DecodePublicKey(params *ring.Params, buf []byte) (*gpv.PublicKey, error) {
	const op = "codec.DecodePublicKey"
	if params == nil {
		return nil, errs.New(errs.InvalidInput, op+": nil params")
	}
	h, err := readUnsigned(newBitReader(buf), params.N, publicWidth(params), op)
	if err != nil {
		return nil, err
	}
	return &gpv.PublicKey{H: h}, nil
}

func writeSigned(w *bitWriter, poly ring.PolyZ, width int, op string) error {
	half := int64(1) << (width - 1)
	for _, c := range poly.Coeffs {
		if c < -half || c >= half {
			return errs.New(errs.InvalidInput, op+": coefficient does not fit signed width")
		}
		w.writeBits(uint64(c)&((1<<uint(width))-1), width)
	}
	return nil
}

func writeUnsigned(w *bitWriter, poly ring.PolyZ, width int, op string) error {
	limit := int64(1) << width
	for _, c := range poly.Coeffs {
		if c < 0 || c >= limit {
			return errs.New(errs.InvalidInput, op+": coefficient does not fit unsigned width")
		}
		w.writeBits(uint64(c), width)
	}
	return nil
}

func readSigned(r *bitReader, n, width int, op string) (ring.PolyZ, error) {
	poly := ring.PolyZ{Coeffs: make([]int64, n)}
	half := int64(1) << (width - 1)
	for i := 0; i < n; i++ {
		raw, err := r.readBits(width)
		if err != nil {
			return ring.PolyZ{}, errs.Wrap(errs.InvalidInput, op, err)
		}
		v := int64(raw)
		if v >= half {
			v -= int64(1) << width
		}
		poly.Coeffs[i] = v
	}
	return poly, nil
}

func readUnsigned(r *bitReader, n, width int, op string) (ring.PolyZ, error) {
	poly := ring.PolyZ{Coeffs: make([]int64, n)}
	for i := 0; i < n; i++ {
		raw, err := r.readBits(width)
		if err != nil {
			return ring.PolyZ{}, errs.Wrap(errs.InvalidInput, op, err)
		}
		poly.Coeffs[i] = int64(raw)
	}
	return poly, nil
}
