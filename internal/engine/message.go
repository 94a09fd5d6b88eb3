package engine

import "fmt"

// Message is a progress notification. The zero value is empty and never delivered.
type Message struct {
	Text string
	Err  bool
	// Last marks the final message of a file, successful or not.
	Last bool
}

// Sink receives progress messages, one at a time, from a single goroutine.
type Sink func(Message)

// IsEmpty reports whether m carries no text.
func (m Message) IsEmpty() bool {
	return m.Text == ""
}

func (m Message) String() string {
	return m.Text
}

func info(path, text string) Message {
	return Message{Text: fmt.Sprintf("[%s]: %s", path, text)}
}

func finished(path, text string) Message {
	return Message{Text: fmt.Sprintf("[%s]: %s", path, text), Last: true}
}

func failure(path, text string) Message {
	return Message{Text: fmt.Sprintf("[%s]: %s", path, text), Err: true, Last: true}
}

// messagesPerFile bounds the number of messages one worker emits.
const messagesPerFile = 3

// progress owns the message channel and its only consumer.
type progress struct {
	messages chan Message
	done     chan struct{}
}

// startProgress sizes the channel so that producers never block and starts the consumer.
func startProgress(items int, sink Sink) *progress {
	p := &progress{
		messages: make(chan Message, messagesPerFile*items+1),
		done:     make(chan struct{}),
	}

	go func() {
		defer close(p.done)

		for msg := range p.messages {
			if msg.IsEmpty() || sink == nil {
				continue
			}

			sink(msg)
		}
	}()

	return p
}

func (p *progress) send(msg Message) {
	p.messages <- msg
}

// stop closes the channel and waits until the consumer drained it.
func (p *progress) stop() {
	close(p.messages)

	<-p.done
}
