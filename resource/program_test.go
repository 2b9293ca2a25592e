// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gerium/vk"
)

// spirvBuilder assembles a minimal, syntactically-valid-enough SPIR-V
// word stream for exercising reflectModule without a real shader
// compiler — only the opcodes this reflector understands need to be
// present.
type spirvBuilder struct {
	words []uint32
}

func newSPIRVBuilder() *spirvBuilder {
	return &spirvBuilder{words: []uint32{spirvMagic, 0x00010300, 0, 100, 0}}
}

func (b *spirvBuilder) emit(opcode uint32, operands ...uint32) {
	head := (uint32(1+len(operands)) << 16) | opcode
	b.words = append(b.words, head)
	b.words = append(b.words, operands...)
}

func (b *spirvBuilder) bytes() []byte {
	out := make([]byte, len(b.words)*4)
	for i, w := range b.words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// TestReflectModule_UniformBuffer builds a module declaring one
// Uniform-storage-class variable (set 0, binding 2) whose pointee is a
// Block-decorated struct, and checks it reflects into exactly one
// DescriptorBinding of type UniformBuffer.
func TestReflectModule_UniformBuffer(t *testing.T) {
	b := newSPIRVBuilder()
	const (
		floatType  = 1
		structType = 5
		ptrType    = 6
		variable   = 10
	)
	b.emit(opDecorate, variable, decorationDescriptorSet, 0)
	b.emit(opDecorate, variable, decorationBinding, 2)
	b.emit(opDecorate, structType, decorationBlock)
	b.emit(opTypeFloat, floatType, 32)
	b.emit(opTypeStruct, structType, floatType)
	b.emit(opTypePointer, ptrType, storageClassUniform, structType)
	b.emit(opVariable, ptrType, variable, storageClassUniform)

	bindings, bindingSet, pcSize, _, _, err := reflectModule(b.bytes())
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, uint32(2), bindings[0].Binding)
	assert.Equal(t, vk.DescriptorTypeUniformBuffer, bindings[0].Type)
	assert.Equal(t, uint32(1), bindings[0].Count)
	assert.Equal(t, uint32(0), bindingSet[2])
	assert.Zero(t, pcSize)
}

// TestReflectModule_StorageBufferBlock checks a BufferBlock-decorated
// struct behind a Uniform-class pointer reflects as StorageBuffer, the
// pre-SPIR-V-1.3 SSBO idiom still emitted by some shader compilers.
func TestReflectModule_StorageBufferBlock(t *testing.T) {
	b := newSPIRVBuilder()
	const (
		floatType  = 1
		structType = 5
		ptrType    = 6
		variable   = 10
	)
	b.emit(opDecorate, variable, decorationDescriptorSet, 1)
	b.emit(opDecorate, variable, decorationBinding, 0)
	b.emit(opDecorate, structType, decorationBufferBlock)
	b.emit(opTypeFloat, floatType, 32)
	b.emit(opTypeStruct, structType, floatType)
	b.emit(opTypePointer, ptrType, storageClassUniform, structType)
	b.emit(opVariable, ptrType, variable, storageClassUniform)

	bindings, bindingSet, _, _, _, err := reflectModule(b.bytes())
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, vk.DescriptorTypeStorageBuffer, bindings[0].Type)
	assert.Equal(t, uint32(1), bindingSet[0])
}

// TestReflectModule_PushConstant checks a PushConstant-storage-class
// struct's reflected size accounts for its member offset plus that
// member's own size.
func TestReflectModule_PushConstant(t *testing.T) {
	b := newSPIRVBuilder()
	const (
		floatType  = 1
		vec4Type   = 2
		structType = 5
		ptrType    = 6
		variable   = 11
	)
	b.emit(opTypeFloat, floatType, 32)
	b.emit(opTypeVector, vec4Type, floatType, 4)
	b.emit(opMemberDecorate, structType, 0, decorationOffset, 0)
	b.emit(opTypeStruct, structType, vec4Type)
	b.emit(opTypePointer, ptrType, storageClassPushConstant, structType)
	b.emit(opVariable, ptrType, variable, storageClassPushConstant)

	_, _, pcSize, _, _, err := reflectModule(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(16), pcSize)
}

// TestReflectProgram_MergesStageFlags checks that a binding declared by
// two stages merges into a single entry whose StageFlags is the union
// of both, per spec.md §4.3's "merge stage usage masks for duplicate
// bindings; store the union".
func TestReflectProgram_MergesStageFlags(t *testing.T) {
	const (
		floatType  = 1
		structType = 5
		ptrType    = 6
		variable   = 10
	)
	build := func() []byte {
		b := newSPIRVBuilder()
		b.emit(opDecorate, variable, decorationDescriptorSet, 0)
		b.emit(opDecorate, variable, decorationBinding, 0)
		b.emit(opDecorate, structType, decorationBlock)
		b.emit(opTypeFloat, floatType, 32)
		b.emit(opTypeStruct, structType, floatType)
		b.emit(opTypePointer, ptrType, storageClassUniform, structType)
		b.emit(opVariable, ptrType, variable, storageClassUniform)
		return b.bytes()
	}

	program, err := ReflectProgram([]ProgramStage{
		{Stage: vk.ShaderStageVertex, Code: build(), EntryPoint: "main"},
		{Stage: vk.ShaderStageFragment, Code: build(), EntryPoint: "main"},
	})
	require.NoError(t, err)
	require.Len(t, program.Sets, 1)
	require.Len(t, program.Sets[0].Bindings, 1)
	assert.Equal(t, vk.ShaderStageVertex|vk.ShaderStageFragment, program.Sets[0].Bindings[0].StageFlags)
}

func TestReflectModule_RejectsBadMagic(t *testing.T) {
	bad := make([]byte, 20)
	_, _, _, _, _, err := reflectModule(bad)
	assert.Error(t, err)
}
