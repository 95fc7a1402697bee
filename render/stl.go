package render

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	stlHeaderSize   = 84
	stlTriangleSize = 50
	// Triangles buffered between the Renderer and the file.
	trianglesInBuffer = 1 << 8
)

// CreateSTL reads every triangle from r and writes them to a binary STL file at path.
func CreateSTL(path string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	// The triangle count is unknown until r is drained, header is written last.
	if _, err = file.Seek(stlHeaderSize, io.SeekStart); err != nil {
		return err
	}
	n, err := io.CopyBuffer(file, &stlReader{r: r}, make([]byte, stlTriangleSize*trianglesInBuffer))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.New("renderer produced no triangles")
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	header := stlHeader{Count: uint32(n / stlTriangleSize)}
	if err = binary.Write(file, binary.LittleEndian, &header); err != nil {
		return err
	}
	return file.Close()
}

// WriteSTL writes model triangles to a writer in binary STL format.
func WriteSTL(w io.Writer, model []Triangle3) error {
	if len(model) == 0 {
		return errors.New("empty triangle slice")
	}
	header := stlHeader{Count: uint32(len(model))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, t := range model {
		newSTLTriangle(t).put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// LoadSTL reads the triangles of a binary STL file.
func LoadSTL(path string) ([]Triangle3, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadSTL(fp)
}

// ReadSTL reads binary STL data. Triangles whose stored normal disagrees
// with their winding are returned along with errNormalMismatch.
func ReadSTL(r io.Reader) (output []Triangle3, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, fmt.Errorf("STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
	)
	output = make([]Triangle3, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			if !errors.Is(err, errNormalMismatch) {
				return nil, fmt.Errorf("STL triangle %d: %w", i, err)
			}
			readErr = err
		}
		output = append(output, d.triangle())
	}
	return output, readErr
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlReader encodes the triangles of a Renderer as STL triangle records.
type stlReader struct {
	r   Renderer
	buf [trianglesInBuffer]Triangle3
}

func (s *stlReader) Read(b []byte) (int, error) {
	ntMax := len(b) / stlTriangleSize
	if ntMax > len(s.buf) {
		ntMax = len(s.buf)
	}
	if ntMax == 0 {
		return 0, errors.New("stlReader requires at least 50 bytes to write a single triangle")
	}
	nt, err := s.r.ReadTriangles(s.buf[:ntMax])
	for i, t := range s.buf[:nt] {
		newSTLTriangle(t).put(b[i*stlTriangleSize:])
	}
	return nt * stlTriangleSize, err
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

func newSTLTriangle(t Triangle3) stlTriangle {
	return stlTriangle{
		Normal:  f32From(t.Normal()),
		Vertex1: f32From(t[0]),
		Vertex2: f32From(t[1]),
		Vertex3: f32From(t[2]),
	}
}

func (t stlTriangle) triangle() Triangle3 {
	return Triangle3{r3From(t.Vertex1), r3From(t.Vertex2), r3From(t.Vertex3)}
}

func (t stlTriangle) put(b []byte) {
	_ = b[stlTriangleSize-1] // early bounds check
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0) // Attribute byte count.
}

func (t *stlTriangle) get(b []byte) {
	_ = b[stlTriangleSize-1]
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

var errNormalMismatch = errors.New("STL normal does not match triangle winding")

func (t stlTriangle) validate() error {
	const (
		epsilon = 1e-12
		normTol = 5e-2
	)
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	tri := t.triangle()
	if tri.Degenerate(epsilon) {
		return errors.New("triangle is degenerate")
	}
	// Zero normals are allowed by the format.
	if t.Normal == ([3]float32{}) {
		return nil
	}
	if !equalWithin3F32(f32From(tri.Normal()), t.Normal, normTol) {
		return errNormalMismatch
	}
	return nil
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	for _, c := range f {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return true
		}
	}
	return false
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func f32From(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func r3From(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}
