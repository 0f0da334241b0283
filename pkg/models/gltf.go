package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/glyphcube/pkg/math3d"
)

// SaveGLB writes the mesh as a binary glTF file. Faces are exported as a
// triangle primitive (each quad split along its 0-2 diagonal) and edges as a
// line primitive sharing the same positions.
func SaveGLB(m *Mesh, path string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid mesh: %w", err)
	}
	if len(m.Vertices) > math.MaxUint16 {
		return fmt.Errorf("too many vertices for 16-bit indices: %d", len(m.Vertices))
	}

	doc := gltf.NewDocument()

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	posIdx := modeler.WritePosition(doc, positions)

	var prims []*gltf.Primitive

	if len(m.Faces) > 0 {
		tris := m.Triangles()
		indices := make([]uint16, 0, 3*len(tris))
		for _, tri := range tris {
			indices = append(indices, uint16(tri[0]), uint16(tri[1]), uint16(tri[2]))
		}
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitiveTriangles,
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{gltf.POSITION: posIdx},
		})
	}

	if len(m.Edges) > 0 {
		indices := make([]uint16, 0, 2*len(m.Edges))
		for _, e := range m.Edges {
			indices = append(indices, uint16(e[0]), uint16(e[1]))
		}
		prims = append(prims, &gltf.Primitive{
			Mode:       gltf.PrimitiveLines,
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{gltf.POSITION: posIdx},
		})
	}

	doc.Meshes = []*gltf.Mesh{{Name: m.Name, Primitives: prims}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// LoadGLB reads a mesh written by SaveGLB. Triangle pairs sharing their
// first vertex and 0-2 diagonal are folded back into quads.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("%s: no meshes", path)
	}

	src := doc.Meshes[0]
	mesh := NewMesh(src.Name)
	posIdx := -1

	for _, prim := range src.Primitives {
		idx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx == -1 {
			mesh.Vertices, err = readVec3Accessor(doc, idx)
			if err != nil {
				return nil, fmt.Errorf("read positions: %w", err)
			}
			posIdx = idx
		} else if idx != posIdx {
			return nil, fmt.Errorf("primitives use different position accessors (%d, %d)", posIdx, idx)
		}
		if prim.Indices == nil {
			return nil, fmt.Errorf("primitive without indices")
		}

		indices, err := readIndices(doc, *prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}

		switch prim.Mode {
		case gltf.PrimitiveTriangles:
			faces, err := quadsFromTriangles(indices)
			if err != nil {
				return nil, err
			}
			mesh.Faces = append(mesh.Faces, faces...)
		case gltf.PrimitiveLines:
			if len(indices)%2 != 0 {
				return nil, fmt.Errorf("line primitive has odd index count %d", len(indices))
			}
			for i := 0; i < len(indices); i += 2 {
				mesh.Edges = append(mesh.Edges, [2]int{indices[i], indices[i+1]})
			}
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func quadsFromTriangles(indices []int) ([][4]int, error) {
	if len(indices)%6 != 0 {
		return nil, fmt.Errorf("triangle index count %d is not a whole number of quads", len(indices))
	}
	quads := make([][4]int, 0, len(indices)/6)
	for i := 0; i < len(indices); i += 6 {
		a, b := indices[i:i+3], indices[i+3:i+6]
		if a[0] != b[0] || a[2] != b[1] {
			return nil, fmt.Errorf("triangles %d and %d do not form a quad", i/3, i/3+1)
		}
		quads = append(quads, [4]int{a[0], a[1], a[2], b[2]})
	}
	return quads, nil
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+12 > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		result[i] = math3d.V3(
			float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))),
			float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))),
		)
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		off := start + i*stride
		if off+size > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		default:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes resolves the embedded buffer behind an accessor and returns
// it with the first element offset and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data, view.ByteOffset + accessor.ByteOffset, stride, nil
}
