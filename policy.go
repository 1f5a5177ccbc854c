package talkpage

// RedisplayPolicy decides whether a talk page should repeat its comment link
// after the comments, based on how long the thread is. Hosts use it to fill
// in RenderContext.Redisplay; the View itself only looks at the flag.
//
// The zero value never asks for the link to be redisplayed.
type RedisplayPolicy struct {
	// MinComments is the number of comments a thread needs before the
	// link is repeated below them. Zero or less turns redisplaying off.
	MinComments int
}

// Redisplay returns true if a thread with count comments should have its
// comment link repeated.
func (p RedisplayPolicy) Redisplay(count int) bool {
	return p.MinComments > 0 && count >= p.MinComments
}

// Apply returns a copy of rc with Redisplay set if the policy asks for it
// for a thread of count comments. A Redisplay that's already set is left
// alone.
func (p RedisplayPolicy) Apply(rc RenderContext, count int) RenderContext {
	if p.Redisplay(count) {
		rc.Redisplay = true
	}
	return rc
}
