package engine

import (
	"go.uber.org/zap"

	"github.com/wippyai/scene-runtime/container"
	"github.com/wippyai/scene-runtime/resource"
)

// track plays one clip into an attribute set.
type track struct {
	clip   *container.Clip
	time   float32
	weight float32
}

// attributeSet is a materialized animation target: numTracks floats in
// the scene instance that clips are blended into on update.
type attributeSet struct {
	info   *container.AttributeSet
	scene  *scene
	values []float32
	tracks []track
}

func (s *attributeSet) clips() []container.Clip {
	return s.scene.info.SetClips(s.info)
}

// NumAttributeSets returns the number of attribute sets of a scene, or -1.
func (e *Engine) NumAttributeSets(h int) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return -1
	}
	return len(s.info.AttributeSets)
}

// AttributeSetNameAt returns the name of attribute set index of a scene.
func (e *Engine) AttributeSetNameAt(h, index int) string {
	s, ok := e.scenes.Get(h)
	if !ok || index < 0 || index >= len(s.info.AttributeSets) {
		return ""
	}
	return s.info.AttributeSets[index].Name
}

// AttributeSetHandle returns the handle of attribute set index of a scene,
// or -1. A new set has one track and no clip.
func (e *Engine) AttributeSetHandle(h, index int) int {
	s, ok := e.scenes.Get(h)
	if !ok || index < 0 || index >= len(s.info.AttributeSets) {
		return resource.Invalid
	}
	if sh := s.attributeSetHandles[index]; sh != resource.Invalid {
		return sh
	}

	info := &s.info.AttributeSets[index]
	data := slice(s.mem(), int(info.Offset), int(info.NumTracks)*4)
	if data == nil {
		Logger().Warn("attribute set outside instance",
			zap.String("scene", s.info.Name),
			zap.String("set", info.Name),
			zap.Uint32("offset", info.Offset))
		return resource.Invalid
	}
	sh := e.attributeSets.Insert(&attributeSet{
		info:   info,
		scene:  s,
		values: floats(data, int(info.NumTracks)),
		tracks: make([]track, 1),
	})
	s.attributeSetHandles[index] = sh
	return sh
}

// AttributeSetHandleByName is AttributeSetHandle for a set found by name.
func (e *Engine) AttributeSetHandleByName(h int, name string) int {
	s, ok := e.scenes.Get(h)
	if !ok {
		return resource.Invalid
	}
	index := s.info.AttributeSetIndex(name)
	if index < 0 {
		return resource.Invalid
	}
	return e.AttributeSetHandle(h, index)
}

// AttributeSetName returns the name of an attribute set.
func (e *Engine) AttributeSetName(sh int) string {
	if set, ok := e.attributeSets.Get(sh); ok {
		return set.info.Name
	}
	return ""
}

// NumClips returns the number of clips of an attribute set, or -1.
func (e *Engine) NumClips(sh int) int {
	set, ok := e.attributeSets.Get(sh)
	if !ok {
		return -1
	}
	return len(set.clips())
}

// ClipName returns the name of a clip of an attribute set.
func (e *Engine) ClipName(sh, clip int) string {
	set, ok := e.attributeSets.Get(sh)
	if !ok {
		return ""
	}
	clips := set.clips()
	if clip < 0 || clip >= len(clips) {
		return ""
	}
	return clips[clip].Name
}

// ClipLength returns the length of a clip in seconds, or 0.
func (e *Engine) ClipLength(sh, clip int) float32 {
	set, ok := e.attributeSets.Get(sh)
	if !ok {
		return 0
	}
	clips := set.clips()
	if clip < 0 || clip >= len(clips) {
		return 0
	}
	return clips[clip].Length
}

// ClipIndex finds a clip of an attribute set by name, or returns -1.
func (e *Engine) ClipIndex(sh int, name string) int {
	set, ok := e.attributeSets.Get(sh)
	if !ok {
		return -1
	}
	return set.scene.info.ClipIndex(set.info, name)
}

// SetNumTracks sets how many clips can be blended into an attribute set.
// New tracks have no clip.
func (e *Engine) SetNumTracks(sh, n int) {
	set, ok := e.attributeSets.Get(sh)
	if !ok || n < 0 {
		return
	}
	if n <= len(set.tracks) {
		clear(set.tracks[n:])
		set.tracks = set.tracks[:n]
		return
	}
	set.tracks = append(set.tracks, make([]track, n-len(set.tracks))...)
}

// SetClip plays clip on a track, or nothing when clip is out of range
// (use -1). Time and weight are reset to 0. Call it whenever a new clip
// starts or time or weight jump.
func (e *Engine) SetClip(sh, trk, clip int) {
	set, ok := e.attributeSets.Get(sh)
	if !ok || trk < 0 || trk >= len(set.tracks) {
		return
	}
	t := &set.tracks[trk]
	t.clip = nil
	if clips := set.clips(); clip >= 0 && clip < len(clips) {
		t.clip = &clips[clip]
	}
	t.time, t.weight = 0, 0
}

// SetTrackParameters sets the clip time and blend weight of a track.
func (e *Engine) SetTrackParameters(sh, trk int, time, weight float32) {
	set, ok := e.attributeSets.Get(sh)
	if !ok || trk < 0 || trk >= len(set.tracks) {
		return
	}
	set.tracks[trk].time = time
	set.tracks[trk].weight = weight
}
