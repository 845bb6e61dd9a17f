package material

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/sunlit/common"
	"github.com/Carmen-Shannon/sunlit/engine/renderer/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	label string
	w, h  uint32
}

func (t *fakeTexture) Label() string                { return t.label }
func (t *fakeTexture) Release()                     {}
func (t *fakeTexture) Size() (width, height uint32) { return t.w, t.h }

type fakeUploader struct {
	mu       sync.Mutex
	uploads  []string
	failWith error
}

func (u *fakeUploader) UploadTexture(label string, data common.TextureStagingData) (gpu.Texture, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failWith != nil {
		return nil, u.failWith
	}
	u.uploads = append(u.uploads, label)
	return &fakeTexture{label: label, w: data.Width, h: data.Height}, nil
}

func TestParseShadingModel(t *testing.T) {
	for _, m := range append([]ShadingModel{ShadingNone}, ShadingModels...) {
		parsed, err := ParseShadingModel(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	parsed, err := ParseShadingModel("unlit")
	require.NoError(t, err)
	assert.Equal(t, ShadingUnlit, parsed)

	_, err = ParseShadingModel("toon")
	assert.Error(t, err)
}

func TestShadingModelUnmarshalText(t *testing.T) {
	var m ShadingModel
	require.NoError(t, m.UnmarshalText([]byte("sh_bph")))
	assert.Equal(t, ShadingShadowedBlinnPhong, m)
	assert.Error(t, m.UnmarshalText([]byte("nope")))
}

func TestSlotsFor(t *testing.T) {
	assert.Len(t, SlotsFor(ShadingBlinnPhong), 8)
	assert.Equal(t, SlotsFor(ShadingBlinnPhong), SlotsFor(ShadingShadowedBlinnPhong))
	assert.Contains(t, SlotsFor(ShadingPBR), SlotMetalness)
	assert.Contains(t, SlotsFor(ShadingPBR), SlotAO)
	assert.Equal(t, []TextureSlot{SlotAlbedo}, SlotsFor(ShadingUnlit))
	assert.Nil(t, SlotsFor(ShadingSimple))
	assert.Nil(t, SlotsFor(ShadingNone))
}

func TestTextureFutureAwaitTimeout(t *testing.T) {
	f := NewTextureFuture("slow")
	_, err := f.Await(context.Background(), 10*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTextureTimeout))

	_, ok := f.Texture()
	assert.False(t, ok)
}

func TestTextureFutureResolvesOnce(t *testing.T) {
	f := NewTextureFuture("once")
	first := &fakeTexture{label: "first"}
	f.Resolve(first, nil)
	f.Resolve(&fakeTexture{label: "second"}, nil)

	tex, err := f.Await(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Same(t, first, tex)
}

func TestTextureFutureError(t *testing.T) {
	f := NewTextureFuture("broken")
	f.Resolve(nil, errors.New("bad png"))

	_, err := f.Await(context.Background(), time.Second)
	assert.ErrorContains(t, err, "bad png")
	_, ok := f.Texture()
	assert.False(t, ok)
}

func TestResolvedTexturePassthrough(t *testing.T) {
	tex := &fakeTexture{label: "ready"}
	f := ResolvedTexture(tex)
	got, ok := f.Texture()
	require.True(t, ok)
	assert.Same(t, tex, got)
}

func TestMaterialBindUsesPlaceholders(t *testing.T) {
	up := &fakeUploader{}
	ph, err := NewPlaceholders(up)
	require.NoError(t, err)

	albedo := &fakeTexture{label: "albedo"}
	m := DefaultMaterial(WithTexture(SlotAlbedo, ResolvedTexture(albedo)))
	m.SetTexture(SlotSpecular, NewTextureFuture("pending"))

	bound := m.Bind(SlotsFor(ShadingBlinnPhong), ph)
	require.Len(t, bound, 8)
	for i, slot := range SlotsFor(ShadingBlinnPhong) {
		switch slot {
		case SlotAlbedo:
			assert.Same(t, albedo, bound[i])
		default:
			assert.Same(t, ph.Get(slot.Placeholder()), bound[i], "slot %s", slot)
		}
	}
}

func TestMaterialAwaitTextures(t *testing.T) {
	m := DefaultMaterial()
	m.SetTexture(SlotNormal, NewTextureFuture("never"))
	m.SetTexture(SlotAlbedo, ResolvedTexture(&fakeTexture{label: "ok"}))

	assert.False(t, m.Awaited())
	err := m.AwaitTextures(context.Background(), SlotsFor(ShadingPBR), 5*time.Millisecond)
	assert.True(t, errors.Is(err, ErrTextureTimeout))
	assert.True(t, m.Awaited())
}

func TestMaterialAwaitTexturesSharesOneDeadline(t *testing.T) {
	m := DefaultPBRMaterial()
	slots := SlotsFor(ShadingPBR)
	require.Greater(t, len(slots), 2)
	for _, slot := range slots {
		m.SetTexture(slot, NewTextureFuture(slot.String()))
	}
	timeout := 50 * time.Millisecond

	start := time.Now()
	err := m.AwaitTextures(context.Background(), slots, timeout)
	elapsed := time.Since(start)

	assert.True(t, errors.Is(err, ErrTextureTimeout))
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, time.Duration(len(slots)-1)*timeout)
}

func TestShadingModelSpotLit(t *testing.T) {
	assert.True(t, ShadingBlinnPhong.SpotLit())
	assert.True(t, ShadingShadowedBlinnPhong.SpotLit())
	assert.False(t, ShadingPBR.SpotLit())
	assert.False(t, ShadingUnlit.SpotLit())
	assert.False(t, ShadingSimple.SpotLit())
}

func TestDefaultMaterialValues(t *testing.T) {
	p := DefaultMaterial().Phong()
	assert.InDelta(t, 0.3, p.Ka.X(), 1e-6)
	assert.Equal(t, float32(50), p.Ns)
	assert.Equal(t, 2, p.Illum)

	pbr := DefaultPBRMaterial().PBR()
	assert.Equal(t, float32(1), pbr.Roughness)
	assert.Equal(t, float32(0), pbr.Metalness)
}

func TestCheckerTexture(t *testing.T) {
	a := [4]uint8{255, 255, 255, 255}
	b := [4]uint8{0, 0, 0, 255}
	tex := CheckerTexture(8, 2, a, b)
	require.Len(t, tex.Pixels, 8*8*4)
	assert.Equal(t, a[:], tex.Pixels[0:4])
	assert.Equal(t, b[:], tex.Pixels[4*4:4*4+4])
}

func TestTextureLoaderStaging(t *testing.T) {
	up := &fakeUploader{}
	l := NewTextureLoader(up, WithWorkers(2))

	futures := make([]*TextureFuture, 4)
	for i := range futures {
		futures[i] = l.LoadStaging(fmt.Sprintf("solid_%d", i), common.SolidTexture([4]uint8{1, 2, 3, 4}))
	}
	for _, f := range futures {
		tex, err := f.Await(context.Background(), 2*time.Second)
		require.NoError(t, err)
		w, h := tex.Size()
		assert.Equal(t, uint32(1), w)
		assert.Equal(t, uint32(1), h)
	}
}

func TestTextureLoaderRejectsBadStaging(t *testing.T) {
	l := NewTextureLoader(&fakeUploader{})
	f := l.LoadStaging("short", common.TextureStagingData{Pixels: []byte{1}, Width: 2, Height: 2})
	_, err := f.Await(context.Background(), 2*time.Second)
	assert.Error(t, err)
}

func TestTextureLoaderRejectsNonImage(t *testing.T) {
	l := NewTextureLoader(&fakeUploader{})
	f := l.LoadImported("text", &common.ImportedTexture{Name: "text", Data: []byte("definitely not an image")})
	_, err := f.Await(context.Background(), 2*time.Second)
	assert.ErrorContains(t, err, "not an image")
}
