// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"encoding/binary"
	"fmt"

	"gerium/internal/logging"
	"gerium/vk"
)

var programLogger = logging.For("gerium:program")

// ProgramStage is one compiled SPIR-V module bound to a pipeline
// stage, the input ReflectProgram walks to build a Program — spec.md
// §3's "array of stages (stage kind, SPIR-V bytecode reference, entry
// point)".
type ProgramStage struct {
	Stage      vk.ShaderStageFlagBits
	Module     vk.ShaderModule
	Code       []byte
	EntryPoint string
}

// DescriptorSetLayoutData is the reflection-derived table spec.md §3
// names: one descriptor set's bindings, keyed by set number, with
// stage usage masks merged across every stage that declares the same
// (set, binding) pair.
type DescriptorSetLayoutData struct {
	Set      uint32
	Bindings []DescriptorBinding
}

// Program is spec.md §3's Program data type: the stages making up one
// draw/dispatch technique, plus the per-set descriptor layout table
// and push-constant ranges spec.md §4.3's reflection step derives from
// them ("parse each SPIR-V stage; reflect descriptor sets into
// DescriptorSetLayoutData keyed by set number; merge stage usage masks
// for duplicate bindings; store the union").
type Program struct {
	Stages        []ProgramStage
	Sets          []DescriptorSetLayoutData
	PushConstants []PushConstantRange
}

// spirvMagic is the little-endian word every valid SPIR-V module
// starts with (spec.md §6: "little-endian 32-bit words, magic
// 0x07230203").
const spirvMagic = 0x07230203

// SPIR-V opcodes this reflector inspects. Every other opcode is
// skipped by word count without being decoded — this is a reflector,
// not a validator or disassembler.
const (
	opEntryPoint      = 15
	opTypeInt         = 21
	opTypeFloat       = 22
	opTypeVector      = 23
	opTypeMatrix      = 24
	opTypeImage       = 25
	opTypeSampler     = 26
	opTypeSampledImage = 27
	opTypeArray       = 28
	opTypeRuntimeArray = 29
	opTypeStruct      = 30
	opTypePointer     = 32
	opConstant        = 43
	opVariable        = 59
	opDecorate        = 71
	opMemberDecorate  = 72
)

// Decoration numbers (SPIR-V "Decoration" enum) this reflector reads.
const (
	decorationBlock         = 2
	decorationBufferBlock   = 3
	decorationOffset        = 35
	decorationBinding       = 33
	decorationDescriptorSet = 34
)

// StorageClass numbers this reflector classifies descriptor-bearing
// variables by.
const (
	storageClassUniformConstant = 0
	storageClassUniform         = 2
	storageClassPushConstant    = 9
	storageClassStorageBuffer   = 12
)

// ExecutionModel numbers, mapped to the vk.ShaderStageFlagBits the
// rest of this module uses.
var executionModelStage = map[uint32]vk.ShaderStageFlagBits{
	0: vk.ShaderStageVertex,
	4: vk.ShaderStageFragment,
	5: vk.ShaderStageCompute,
}

type spirvType struct {
	opcode     uint32
	componentCount uint32 // vector/matrix column count, or array length
	elementType uint32    // vector component type, matrix column type, array element type, or pointer pointee type
	width      uint32     // int/float bit width in bytes
	memberTypes []uint32  // struct member type ids, in declaration order
	memberOffsets map[uint32]uint32
	isBlock    bool // Block or BufferBlock decoration present
	isBuffer   bool // BufferBlock specifically (SSBO vs UBO)
}

// entryPointName decodes an OpEntryPoint's name literal, a sequence of
// words holding a NUL-terminated, NUL-padded UTF-8 string — spec.md
// §6's "entry-point name" extraction requirement.
func entryPointName(nameWords []uint32) string {
	buf := make([]byte, 0, len(nameWords)*4)
	for _, w := range nameWords {
		b4 := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, c := range b4 {
			if c == 0 {
				return string(buf)
			}
			buf = append(buf, c)
		}
	}
	return string(buf)
}

// reflectModule walks one SPIR-V module's word stream and extracts the
// descriptor bindings, push-constant size, and entry point it declares,
// grounded on spec.md §6's byte contract: magic check, then a single
// linear pass collecting OpEntryPoint/OpDecorate/OpMemberDecorate
// target metadata, OpType* definitions, and OpVariable storage
// classes, since SPIR-V guarantees every id is defined before its
// first use in this module's bytecode shape (pipeline-stage modules
// built by this runtime's shader compiler, not arbitrary
// hand-assembled SPIR-V with forward decorations).
func reflectModule(code []byte) (bindings []DescriptorBinding, bindingSet map[uint32]uint32, pushConstantSize uint32, entry string, stage vk.ShaderStageFlagBits, err error) {
	if len(code) < 20 || len(code)%4 != 0 {
		return nil, nil, 0, "", 0, fmt.Errorf("resource: spir-v module too short or misaligned (%d bytes)", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, nil, 0, "", 0, fmt.Errorf("resource: spir-v magic mismatch: got 0x%08x", words[0])
	}

	boundID := words[3]
	types := make(map[uint32]*spirvType, boundID)
	varStorage := make(map[uint32]uint32, boundID)
	varType := make(map[uint32]uint32, boundID)
	decSet := make(map[uint32]uint32, boundID)
	decBinding := make(map[uint32]uint32, boundID)
	decBlock := make(map[uint32]bool, boundID)
	decBufferBlock := make(map[uint32]bool, boundID)
	memberOffset := make(map[uint32]map[uint32]uint32, boundID)
	constVal := make(map[uint32]uint32, boundID)

	i := 5
	for i < len(words) {
		head := words[i]
		wordCount := head >> 16
		opcode := head & 0xFFFF
		if wordCount == 0 || i+int(wordCount) > len(words) {
			break
		}
		ops := words[i+1 : i+int(wordCount)]

		switch opcode {
		case opEntryPoint:
			if len(ops) >= 3 && entry == "" {
				stage = executionModelStage[ops[0]]
				entry = entryPointName(ops[2:])
			}
		case opDecorate:
			if len(ops) >= 2 {
				target, decoration := ops[0], ops[1]
				switch decoration {
				case decorationDescriptorSet:
					if len(ops) >= 3 {
						decSet[target] = ops[2]
					}
				case decorationBinding:
					if len(ops) >= 3 {
						decBinding[target] = ops[2]
					}
				case decorationBlock:
					decBlock[target] = true
				case decorationBufferBlock:
					decBlock[target] = true
					decBufferBlock[target] = true
				}
			}
		case opMemberDecorate:
			if len(ops) >= 3 && ops[2] == decorationOffset && len(ops) >= 4 {
				structID, member, offset := ops[0], ops[1], ops[3]
				m := memberOffset[structID]
				if m == nil {
					m = make(map[uint32]uint32)
					memberOffset[structID] = m
				}
				m[member] = offset
			}
		case opTypeInt, opTypeFloat:
			if len(ops) >= 2 {
				types[ops[0]] = &spirvType{opcode: opcode, width: ops[1] / 8}
			}
		case opTypeVector:
			if len(ops) >= 3 {
				types[ops[0]] = &spirvType{opcode: opcode, elementType: ops[1], componentCount: ops[2]}
			}
		case opTypeMatrix:
			if len(ops) >= 3 {
				types[ops[0]] = &spirvType{opcode: opcode, elementType: ops[1], componentCount: ops[2]}
			}
		case opTypeArray:
			if len(ops) >= 3 {
				length := constVal[ops[2]]
				types[ops[0]] = &spirvType{opcode: opcode, elementType: ops[1], componentCount: length}
			}
		case opTypeRuntimeArray:
			if len(ops) >= 2 {
				types[ops[0]] = &spirvType{opcode: opcode, elementType: ops[1]}
			}
		case opTypeStruct:
			if len(ops) >= 1 {
				types[ops[0]] = &spirvType{opcode: opcode, memberTypes: append([]uint32(nil), ops[1:]...)}
			}
		case opTypeImage, opTypeSampler, opTypeSampledImage:
			if len(ops) >= 1 {
				types[ops[0]] = &spirvType{opcode: opcode}
			}
		case opTypePointer:
			if len(ops) >= 3 {
				types[ops[0]] = &spirvType{opcode: opcode, elementType: ops[2]}
			}
		case opConstant:
			if len(ops) >= 3 {
				constVal[ops[1]] = ops[2]
			}
		case opVariable:
			if len(ops) >= 3 {
				resultType, result, storageClass := ops[0], ops[1], ops[2]
				varType[result] = resultType
				varStorage[result] = storageClass
			}
		}
		i += int(wordCount)
	}

	for id, t := range types {
		if t.isBlock = decBlock[id]; t.isBlock {
			t.isBuffer = decBufferBlock[id]
		}
		if m, ok := memberOffset[id]; ok {
			t.memberOffsets = m
		}
	}

	for varID, storage := range varStorage {
		pointerType := types[varType[varID]]
		if pointerType == nil || pointerType.opcode != opTypePointer {
			continue
		}
		pointee := types[pointerType.elementType]

		if storage == storageClassPushConstant {
			if pointee != nil {
				if size := typeSize(pointee, types); size > pushConstantSize {
					pushConstantSize = size
				}
			}
			continue
		}

		set, hasSet := decSet[varID]
		binding, hasBinding := decBinding[varID]
		if !hasSet || !hasBinding {
			continue
		}
		if storage != storageClassUniformConstant && storage != storageClassUniform && storage != storageClassStorageBuffer {
			continue
		}

		count := uint32(1)
		descType := classifyDescriptor(pointee, storage, types)
		if pointee != nil && pointee.opcode == opTypeArray {
			count = pointee.componentCount
			if count == 0 {
				count = 1
			}
		}

		bindings = append(bindings, DescriptorBinding{Binding: binding, Type: descType, Count: count})
		if bindingSet == nil {
			bindingSet = make(map[uint32]uint32)
		}
		bindingSet[binding] = set
	}
	return bindings, bindingSet, pushConstantSize, entry, stage, nil
}

// classifyDescriptor maps a variable's pointee type onto the
// vk.DescriptorType spec.md §3's DescriptorBinding carries, unwrapping
// one or more array levels (a binding declared as an array of
// textures/samplers/buffers) before classifying the element type.
func classifyDescriptor(pointee *spirvType, storage uint32, types map[uint32]*spirvType) vk.DescriptorType {
	switch {
	case pointee != nil && pointee.opcode == opTypeArray:
		return classifyDescriptor(types[pointee.elementType], storage, types)
	case pointee != nil && pointee.opcode == opTypeSampledImage:
		return vk.DescriptorTypeCombinedImageSampler
	case pointee != nil && pointee.opcode == opTypeImage:
		return vk.DescriptorTypeStorageImage
	case pointee != nil && pointee.opcode == opTypeSampler:
		return vk.DescriptorTypeSampler
	case pointee != nil && pointee.opcode == opTypeStruct && pointee.isBuffer:
		return vk.DescriptorTypeStorageBuffer
	case storage == storageClassStorageBuffer:
		return vk.DescriptorTypeStorageBuffer
	default:
		return vk.DescriptorTypeUniformBuffer
	}
}

// typeSize computes a push-constant block's byte size from its
// members' reflected offsets and sizes — the "push-constant block
// size" spec.md §6 asks the reflector to extract. Scalar/vector/matrix
// sizes follow the std430 packing this runtime's shader compiler
// emits; a struct's size is its last member's offset plus that
// member's own size.
func typeSize(t *spirvType, types map[uint32]*spirvType) uint32 {
	switch t.opcode {
	case opTypeInt, opTypeFloat:
		return t.width
	case opTypeVector:
		elem := types[t.elementType]
		if elem == nil {
			return 0
		}
		return elem.width * t.componentCount
	case opTypeMatrix:
		col := types[t.elementType]
		if col == nil {
			return 0
		}
		return typeSize(col, types) * t.componentCount
	case opTypeStruct:
		var size uint32
		for idx, memberID := range t.memberTypes {
			member := types[memberID]
			if member == nil {
				continue
			}
			offset := uint32(idx) * 16 // conservative fallback if no explicit offset decoration
			if t.memberOffsets != nil {
				if o, ok := t.memberOffsets[uint32(idx)]; ok {
					offset = o
				}
			}
			end := offset + typeSize(member, types)
			if end > size {
				size = end
			}
		}
		return size
	default:
		return 0
	}
}

// ReflectProgram implements spec.md §4.3's Program creation: parses
// each stage's SPIR-V, reflects its descriptor sets into
// DescriptorSetLayoutData keyed by set number, merges stage usage
// masks for a binding declared by more than one stage, and collects
// the union of every stage's push-constant block into one range per
// stage that declares one.
func ReflectProgram(stages []ProgramStage) (*Program, error) {
	type key struct {
		set     uint32
		binding uint32
	}
	merged := make(map[key]DescriptorBinding)
	order := make([]key, 0, 8)

	p := &Program{Stages: make([]ProgramStage, len(stages))}
	copy(p.Stages, stages)

	for i, st := range stages {
		bindings, bindingSet, pcSize, entry, reflectedStage, err := reflectModule(st.Code)
		if err != nil {
			return nil, fmt.Errorf("resource: reflect stage %v: %w", st.Stage, err)
		}
		if entry != "" {
			if st.EntryPoint == "" {
				p.Stages[i].EntryPoint = entry
			} else if entry != st.EntryPoint {
				programLogger.Warn("entry point mismatch", "declared", st.EntryPoint, "reflected", entry)
			}
		}
		if reflectedStage != 0 && reflectedStage != st.Stage {
			programLogger.Warn("stage mismatch", "declared", st.Stage, "reflected", reflectedStage)
		}
		for _, b := range bindings {
			k := key{set: bindingSet[b.Binding], binding: b.Binding}
			if existing, ok := merged[k]; ok {
				existing.StageFlags |= st.Stage
				merged[k] = existing
				continue
			}
			b.StageFlags = st.Stage
			merged[k] = b
			order = append(order, k)
		}
		if pcSize > 0 {
			p.PushConstants = append(p.PushConstants, PushConstantRange{
				StageFlags: st.Stage,
				Offset:     0,
				Size:       pcSize,
			})
		}
	}

	setIndex := make(map[uint32]int)
	for _, k := range order {
		b := merged[k]
		idx, ok := setIndex[k.set]
		if !ok {
			idx = len(p.Sets)
			setIndex[k.set] = idx
			p.Sets = append(p.Sets, DescriptorSetLayoutData{Set: k.set})
		}
		p.Sets[idx].Bindings = append(p.Sets[idx].Bindings, b)
	}
	return p, nil
}
