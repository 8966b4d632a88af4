package tailring

import (
	"strings"
	"sync"

	"github.com/smallnest/ringbuffer"
)

// TailBuffer is an io.Writer that keeps only the most recent bytes written
// to it. Subprocess stderr is routed through one so failures can report
// the tail of the tool's output without holding all of it.
type TailBuffer interface {
	Write(p []byte) (int, error)
	String() string
	Len() int
	Capacity() int
}

type rb_impl struct {
	mu   sync.Mutex
	size int
	rb   *ringbuffer.RingBuffer
}

// Write implements io.Writer. Oldest bytes are discarded to make room.
func (r *rb_impl) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(p)
	if len(p) > r.size {
		p = p[len(p)-r.size:]
	}

	if free := r.rb.Free(); free < len(p) {
		discard := make([]byte, len(p)-free)
		if _, err := r.rb.Read(discard); err != nil {
			// buffer state is unknown, start over
			r.rb.Reset()
		}
	}

	if _, err := r.rb.Write(p); err != nil {
		return 0, err
	}
	return n, nil
}

// String returns the retained bytes, trimmed of surrounding whitespace.
func (r *rb_impl) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rb.IsEmpty() {
		return ""
	}
	buf := make([]byte, r.rb.Length())
	buf = r.rb.Bytes(buf)
	return strings.TrimSpace(string(buf))
}

func (r *rb_impl) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rb.Length()
}

func (r *rb_impl) Capacity() int {
	return r.size
}

func New(size int) TailBuffer {
	return &rb_impl{
		size: size,
		rb:   ringbuffer.New(size).SetBlocking(false),
	}
}
