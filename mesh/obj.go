package mesh

import (
	"bufio"
	"io"
	"os"
	"strconv"
)

// WriteOBJ writes the mesh in Wavefront OBJ format. Faces built from a
// FaceGroup are written under one group per role.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, v := range m.Vertices {
		buf = append(buf[:0], 'v')
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, c, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	group := ""
	for i, f := range m.Faces {
		if m.Roles != nil && m.Roles[i].String() != group {
			group = m.Roles[i].String()
			if _, err := bw.WriteString("g " + group + "\n"); err != nil {
				return err
			}
		}
		buf = append(buf[:0], 'f')
		for _, vi := range f {
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(vi+1), 10) // OBJ indices start at 1.
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CreateOBJ writes the mesh to a Wavefront OBJ file at path.
func CreateOBJ(path string, m *Mesh) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err = m.WriteOBJ(fp); err != nil {
		return err
	}
	return fp.Close()
}
