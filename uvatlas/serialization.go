package uvatlas

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
)

// WriteAtlas serializes a in a little-endian binary format with 32-bit
// integers.
func WriteAtlas(w io.Writer, a *Atlas) error {
	header := []int{a.TextureSide, a.GutterSize, len(a.Pages)}
	if err := writeInts(w, header); err != nil {
		return errors.Wrap(err, "write atlas")
	}
	for _, p := range a.Pages {
		if err := writeInts(w, []int{len(p.Charts)}); err != nil {
			return errors.Wrap(err, "write atlas")
		}
		for _, c := range p.Charts {
			if err := writeChart(w, c); err != nil {
				return errors.Wrap(err, "write atlas")
			}
		}
	}
	if err := writeInts(w, []int{len(a.TriangleCameras)}); err != nil {
		return errors.Wrap(err, "write atlas")
	}
	for _, cams := range a.TriangleCameras {
		if err := writeIntList(w, cams); err != nil {
			return errors.Wrap(err, "write atlas")
		}
	}
	return nil
}

// ReadAtlas reads the output written by WriteAtlas.
func ReadAtlas(r io.Reader) (*Atlas, error) {
	header, err := readInts(r, 3)
	if err != nil {
		return nil, errors.Wrap(err, "read atlas")
	}
	res := &Atlas{TextureSide: header[0], GutterSize: header[1]}
	numPages := header[2]
	if numPages < 0 {
		return nil, errors.Errorf("read atlas: invalid page count %d", numPages)
	}
	for i := 0; i < numPages; i++ {
		count, err := readInts(r, 1)
		if err != nil {
			return nil, errors.Wrap(err, "read atlas")
		}
		page := &Page{}
		for j := 0; j < count[0]; j++ {
			c, err := readChart(r)
			if err != nil {
				return nil, errors.Wrap(err, "read atlas")
			}
			page.Charts = append(page.Charts, c)
		}
		res.Pages = append(res.Pages, page)
	}
	numTris, err := readInts(r, 1)
	if err != nil {
		return nil, errors.Wrap(err, "read atlas")
	}
	for i := 0; i < numTris[0]; i++ {
		cams, err := readIntList(r)
		if err != nil {
			return nil, errors.Wrap(err, "read atlas")
		}
		res.TriangleCameras = append(res.TriangleCameras, cams)
	}
	return res, nil
}

func writeChart(w io.Writer, c *Chart) error {
	fields := []int{
		c.ID,
		c.RefCameraID,
		c.SourceLU.X, c.SourceLU.Y,
		c.SourceRD.X, c.SourceRD.Y,
		c.TargetLU.X, c.TargetLU.Y,
	}
	if err := writeInts(w, fields); err != nil {
		return err
	}
	if err := writeIntList(w, c.TriangleIDs); err != nil {
		return err
	}
	return writeIntList(w, c.CommonCameraIDs)
}

func readChart(r io.Reader) (*Chart, error) {
	fields, err := readInts(r, 8)
	if err != nil {
		return nil, err
	}
	tris, err := readIntList(r)
	if err != nil {
		return nil, err
	}
	cams, err := readIntList(r)
	if err != nil {
		return nil, err
	}
	return &Chart{
		ID:              fields[0],
		TriangleIDs:     tris,
		CommonCameraIDs: cams,
		MergedWith:      -1,
		RefCameraID:     fields[1],
		SourceLU:        Pixel{X: fields[2], Y: fields[3]},
		SourceRD:        Pixel{X: fields[4], Y: fields[5]},
		TargetLU:        Pixel{X: fields[6], Y: fields[7]},
	}, nil
}

func writeIntList(w io.Writer, values []int) error {
	if err := writeInts(w, []int{len(values)}); err != nil {
		return err
	}
	return writeInts(w, values)
}

func readIntList(r io.Reader) ([]int, error) {
	count, err := readInts(r, 1)
	if err != nil {
		return nil, err
	} else if count[0] < 0 {
		return nil, errors.Errorf("invalid list length %d", count[0])
	} else if count[0] == 0 {
		return nil, nil
	}
	return readInts(r, count[0])
}

func writeInts(w io.Writer, values []int) error {
	if len(values) == 0 {
		return nil
	}
	data := make([]int32, len(values))
	for i, x := range values {
		if int64(x) > math.MaxInt32 || int64(x) < math.MinInt32 {
			return errors.Errorf("value %d does not fit in 32 bits", x)
		}
		data[i] = int32(x)
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// readChunkSize bounds each allocation in readInts. A corrupt length fails
// with an EOF after at most one chunk past the real data.
const readChunkSize = 1 << 16

func readInts(r io.Reader, n int) ([]int, error) {
	res := make([]int, 0, essentials.MinInt(n, readChunkSize))
	data := make([]int32, essentials.MinInt(n, readChunkSize))
	for len(res) < n {
		chunk := data[:essentials.MinInt(n-len(res), len(data))]
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			return nil, err
		}
		for _, x := range chunk {
			res = append(res, int(x))
		}
	}
	return res, nil
}
