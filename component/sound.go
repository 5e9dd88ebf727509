package component

import (
	"github.com/lixenwraith/ngine/audio"
	"github.com/lixenwraith/ngine/engine"
)

// CollisionSound plays an effect when its entity touches another, optionally filtered by tag
type CollisionSound struct {
	engine.BaseComponent

	Sound audio.SoundType
	Tag   string

	player audio.Player
}

// NewCollisionSound plays sound through p on contacts with entities tagged tag, any entity when tag is empty
func NewCollisionSound(p audio.Player, sound audio.SoundType, tag string) *CollisionSound {
	if p == nil {
		p = audio.NopPlayer{}
	}
	return &CollisionSound{Sound: sound, Tag: tag, player: p}
}

func (c *CollisionSound) OnCollision(other *engine.Entity) {
	if c.Tag != "" && (other == nil || other.Tag != c.Tag) {
		return
	}
	c.player.Play(c.Sound)
}
