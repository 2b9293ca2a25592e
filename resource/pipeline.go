// Copyright 2025 The Gerium Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"gerium/handle"
	"gerium/vk"
)

type pipelineTag struct{}

func (pipelineTag) handleMarker() {}

// PipelineHandle addresses a pipeline in the Manager's pool.
type PipelineHandle = handle.Handle[pipelineTag]

// Pipeline is a resource-pool entry for a graphics or compute
// VkPipeline, plus the concatenated VkPipelineLayout CommandBuffer
// binds descriptor sets and push constants against (spec.md §4.3,
// "pipeline layout concatenates them plus push constants if any").
type Pipeline struct {
	Handle     vk.Pipeline
	Layout     vk.PipelineLayout
	BindPoint  uint32 // vk.PipelineBindPointGraphics or ...Compute
	ownsLayout bool
}

// ShaderStage is one already-compiled SPIR-V module and the pipeline
// stage it fills. ReflectProgram (program.go) is what normally produces
// these plus the DescriptorBinding list passed alongside, by walking
// the module's SPIR-V bytecode directly; callers that already know
// their bindings (compute-only utility passes, the profiler overlay)
// can build both by hand.
type ShaderStage struct {
	Stage      vk.ShaderStageFlagBits
	Module     vk.ShaderModule
	EntryPoint string
}

// VertexAttribute and VertexBinding describe the fixed-function vertex
// input state of a graphics pipeline.
type VertexAttribute struct {
	Location uint32
	Binding  uint32
	Format   vk.Format
	Offset   uint32
}

type VertexBinding struct {
	Binding uint32
	Stride  uint32
}

// PushConstantRange mirrors vk.PushConstantRange.
type PushConstantRange struct {
	StageFlags vk.ShaderStageFlagBits
	Offset     uint32
	Size       uint32
}

// GraphicsPipelineCreation is the plain value-type descriptor for a
// graphics pipeline. Viewport and scissor are always dynamic state
// (spec.md §4.5's set_viewport/set_scissor record them per frame), so
// the only viewport/scissor state baked into the pipeline is the
// count.
type GraphicsPipelineCreation struct {
	Stages             []ShaderStage
	VertexBindings     []VertexBinding
	VertexAttributes   []VertexAttribute
	Topology           uint32
	CullMode           uint32
	FrontFace          uint32
	DepthTestEnable    bool
	DepthWriteEnable   bool
	DepthCompareOp     uint32
	BlendEnable        bool
	SampleCount        uint32
	ColorAttachments   uint32
	DescriptorLayouts  []vk.DescriptorSetLayout
	PushConstants      []PushConstantRange
	RenderPass         vk.RenderPass
	Name               string
}

// ComputePipelineCreation is the plain value-type descriptor for a
// compute pipeline.
type ComputePipelineCreation struct {
	Stage             ShaderStage
	DescriptorLayouts []vk.DescriptorSetLayout
	PushConstants     []PushConstantRange
	Name              string
}

func (m *Manager) createPipelineLayout(setLayouts []vk.DescriptorSetLayout, pushConstants []PushConstantRange) (vk.PipelineLayout, error) {
	info := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(setLayouts)),
	}
	if len(setLayouts) > 0 {
		info.PSetLayouts = &setLayouts[0]
	}
	var ranges []vk.PushConstantRange
	if len(pushConstants) > 0 {
		ranges = make([]vk.PushConstantRange, len(pushConstants))
		for i, pc := range pushConstants {
			ranges[i] = vk.PushConstantRange{StageFlags: pc.StageFlags, Offset: pc.Offset, Size: pc.Size}
		}
		info.PushConstantRangeCount = uint32(len(ranges))
		info.PPushConstantRanges = &ranges[0]
	}
	var layout vk.PipelineLayout
	if result := m.dev.Commands().CreatePipelineLayout(m.dev.Handle(), &info, &layout); !result.IsSuccess() {
		return 0, fmtErr("vkCreatePipelineLayout", result)
	}
	return layout, nil
}

func entryPointBytes(name string) []byte {
	if name == "" {
		name = "main"
	}
	return append([]byte(name), 0)
}

// CreateGraphicsPipeline builds a graphics VkPipeline and its
// concatenated layout, grounded on hal/vulkan/pipeline.go's state-block
// assembly reworked onto this module's trimmed vk.types fixed-function
// structs. Viewport/scissor counts are always 1; their actual rects
// are set per frame as dynamic state.
func (m *Manager) CreateGraphicsPipeline(creation GraphicsPipelineCreation) (PipelineHandle, error) {
	layout, err := m.createPipelineLayout(creation.DescriptorLayouts, creation.PushConstants)
	if err != nil {
		return handle.Undef[pipelineTag](), err
	}

	stages := make([]vk.PipelineShaderStageCreateInfo, len(creation.Stages))
	entryPoints := make([][]byte, len(creation.Stages))
	for i, st := range creation.Stages {
		entryPoints[i] = entryPointBytes(st.EntryPoint)
		stages[i] = vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  st.Stage,
			Module: st.Module,
			PName:  &entryPoints[i][0],
		}
	}

	bindings := make([]vk.VertexInputBindingDescription, len(creation.VertexBindings))
	for i, b := range creation.VertexBindings {
		bindings[i] = vk.VertexInputBindingDescription{Binding: b.Binding, Stride: b.Stride, InputRate: 0}
	}
	attribs := make([]vk.VertexInputAttributeDescription, len(creation.VertexAttributes))
	for i, a := range creation.VertexAttributes {
		attribs[i] = vk.VertexInputAttributeDescription{Location: a.Location, Binding: a.Binding, Format: a.Format, Offset: a.Offset}
	}
	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(bindings)),
		VertexAttributeDescriptionCount: uint32(len(attribs)),
	}
	if len(bindings) > 0 {
		vertexInput.PVertexBindingDescriptions = &bindings[0]
	}
	if len(attribs) > 0 {
		vertexInput.PVertexAttributeDescriptions = &attribs[0]
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: creation.Topology,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    creation.CullMode,
		FrontFace:   creation.FrontFace,
		LineWidth:   1.0,
	}

	sampleCount := creation.SampleCount
	if sampleCount == 0 {
		sampleCount = 1
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: sampleCount,
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:            vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:  boolToVk(creation.DepthTestEnable),
		DepthWriteEnable: boolToVk(creation.DepthWriteEnable),
		DepthCompareOp:   creation.DepthCompareOp,
	}

	attachmentCount := creation.ColorAttachments
	if attachmentCount == 0 {
		attachmentCount = 1
	}
	blendAttachments := make([]vk.PipelineColorBlendAttachmentState, attachmentCount)
	for i := range blendAttachments {
		blendAttachments[i] = vk.PipelineColorBlendAttachmentState{
			BlendEnable:         boolToVk(creation.BlendEnable),
			SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
			DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
			ColorBlendOp:        vk.BlendOpAdd,
			SrcAlphaBlendFactor: vk.BlendFactorOne,
			DstAlphaBlendFactor: vk.BlendFactorZero,
			AlphaBlendOp:        vk.BlendOpAdd,
			ColorWriteMask:      vk.ColorComponentAll,
		}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    &blendAttachments[0],
	}

	dynamicStates := []uint32{vk.DynamicStateViewport, vk.DynamicStateScissor}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    &dynamicStates[0],
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PVertexInputState:   &vertexInput,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterization,
		PMultisampleState:   &multisample,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamicState,
		Layout:              layout,
		RenderPass:          creation.RenderPass,
		BasePipelineIndex:   -1,
	}
	if len(stages) > 0 {
		info.PStages = &stages[0]
	}

	var vkPipeline vk.Pipeline
	if result := m.dev.Commands().CreateGraphicsPipelines(m.dev.Handle(), &info, &vkPipeline); !result.IsSuccess() {
		m.dev.Commands().DestroyPipelineLayout(m.dev.Handle(), layout)
		return handle.Undef[pipelineTag](), fmtErr("vkCreateGraphicsPipelines", result)
	}

	h, entry, err := m.pipelines.ObtainAndAccess()
	if err != nil {
		m.dev.Commands().DestroyPipeline(m.dev.Handle(), vkPipeline)
		m.dev.Commands().DestroyPipelineLayout(m.dev.Handle(), layout)
		return handle.Undef[pipelineTag](), err
	}
	*entry = Pipeline{Handle: vkPipeline, Layout: layout, BindPoint: vk.PipelineBindPointGraphics, ownsLayout: true}
	return h, nil
}

// CreateComputePipeline builds a compute VkPipeline and its layout.
func (m *Manager) CreateComputePipeline(creation ComputePipelineCreation) (PipelineHandle, error) {
	layout, err := m.createPipelineLayout(creation.DescriptorLayouts, creation.PushConstants)
	if err != nil {
		return handle.Undef[pipelineTag](), err
	}

	entryPoint := entryPointBytes(creation.Stage.EntryPoint)
	info := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  creation.Stage.Stage,
			Module: creation.Stage.Module,
			PName:  &entryPoint[0],
		},
		Layout:            layout,
		BasePipelineIndex: -1,
	}

	var vkPipeline vk.Pipeline
	if result := m.dev.Commands().CreateComputePipelines(m.dev.Handle(), &info, &vkPipeline); !result.IsSuccess() {
		m.dev.Commands().DestroyPipelineLayout(m.dev.Handle(), layout)
		return handle.Undef[pipelineTag](), fmtErr("vkCreateComputePipelines", result)
	}

	h, entry, err := m.pipelines.ObtainAndAccess()
	if err != nil {
		m.dev.Commands().DestroyPipeline(m.dev.Handle(), vkPipeline)
		m.dev.Commands().DestroyPipelineLayout(m.dev.Handle(), layout)
		return handle.Undef[pipelineTag](), err
	}
	*entry = Pipeline{Handle: vkPipeline, Layout: layout, BindPoint: vk.PipelineBindPointCompute, ownsLayout: true}
	return h, nil
}

// Pipeline returns the pool entry for h, or nil if h is stale.
func (m *Manager) Pipeline(h PipelineHandle) *Pipeline { return m.pipelines.Access(h) }

// DestroyPipeline releases a pipeline and its owned layout.
func (m *Manager) DestroyPipeline(h PipelineHandle) {
	p := m.pipelines.Access(h)
	if p == nil {
		return
	}
	if p.Handle != 0 {
		m.dev.Commands().DestroyPipeline(m.dev.Handle(), p.Handle)
	}
	if p.ownsLayout && p.Layout != 0 {
		m.dev.Commands().DestroyPipelineLayout(m.dev.Handle(), p.Layout)
	}
	m.pipelines.Release(h)
}

func boolToVk(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
