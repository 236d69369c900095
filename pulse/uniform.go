package pulse

import (
	"encoding/binary"
	"math"

	"github.com/oliverbestmann/hikari/glm"
)

// Std140 serializes values into a buffer using the alignment rules WGSL
// applies to uniform buffers.
type Std140 struct {
	buf []byte
}

func (s *Std140) align(n int) {
	for len(s.buf)%n != 0 {
		s.buf = append(s.buf, 0)
	}
}

func (s *Std140) float(value float32) {
	s.buf = binary.LittleEndian.AppendUint32(s.buf, math.Float32bits(value))
}

func (s *Std140) Float32(value float32) *Std140 {
	s.align(4)
	s.float(value)
	return s
}

func (s *Std140) Uint32(value uint32) *Std140 {
	s.align(4)
	s.buf = binary.LittleEndian.AppendUint32(s.buf, value)
	return s
}

func (s *Std140) Vec2(value glm.Vec2f) *Std140 {
	s.align(8)
	s.float(value[0])
	s.float(value[1])
	return s
}

func (s *Std140) Vec3(value glm.Vec3f) *Std140 {
	s.align(16)
	s.float(value[0])
	s.float(value[1])
	s.float(value[2])
	return s
}

func (s *Std140) Vec4(value [4]float32) *Std140 {
	s.align(16)
	for _, v := range value {
		s.float(v)
	}

	return s
}

// Mat3 writes the matrix as three columns, each padded to 16 bytes.
func (s *Std140) Mat3(value glm.Mat3f) *Std140 {
	for _, col := range value.Columns() {
		s.Vec3(col)
		s.align(16)
	}

	return s
}

// Bytes returns the serialized data, padded to the size of a vec4.
func (s *Std140) Bytes() []byte {
	s.align(16)
	return s.buf
}

func (s *Std140) Reset() {
	s.buf = s.buf[:0]
}
