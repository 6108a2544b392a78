package broker

type subscription[TTopic comparable, TPayload any] struct {
	topic   TTopic
	channel chan TPayload
}

type publication[TTopic comparable, TPayload any] struct {
	topic   TTopic
	payload TPayload
}

// Broker fans payloads out to every subscriber of a topic. It backs the SSE
// stream that mirrors accepted guesses to the player's other open tabs: the
// guess handler publishes to the player's topic and every tab subscribes to
// it.
//
// Delivery is best effort. A subscriber that is not draining its channel has
// its payloads dropped rather than blocking the publisher; SSE clients
// recover by reloading the found list on reconnect.
type Broker[TTopic comparable, TPayload any] struct {
	stopChannel        chan struct{}
	publishChannel     chan publication[TTopic, TPayload]
	subscribeChannel   chan subscription[TTopic, TPayload]
	unsubscribeChannel chan subscription[TTopic, TPayload]
}

// New creates a broker. Call Start in a goroutine to run it and Stop to shut
// it down.
func New[TTopic comparable, TPayload any]() *Broker[TTopic, TPayload] {
	return &Broker[TTopic, TPayload]{
		stopChannel:        make(chan struct{}),
		publishChannel:     make(chan publication[TTopic, TPayload]),
		subscribeChannel:   make(chan subscription[TTopic, TPayload]),
		unsubscribeChannel: make(chan subscription[TTopic, TPayload]),
	}
}

// Start listens for publish, subscribe, and unsubscribe events. It blocks
// until Stop is called, so it should be called in a goroutine.
func (b *Broker[TTopic, TPayload]) Start() {
	subscribers := map[TTopic][]chan TPayload{}
	for {
		select {
		case <-b.stopChannel:
			for _, channels := range subscribers {
				for _, channel := range channels {
					close(channel)
				}
			}
			return

		case sub := <-b.subscribeChannel:
			subscribers[sub.topic] = append(subscribers[sub.topic], sub.channel)

		case sub := <-b.unsubscribeChannel:
			channels := subscribers[sub.topic]
			for i, channel := range channels {
				if channel == sub.channel {
					subscribers[sub.topic] = append(channels[:i], channels[i+1:]...)
					close(channel)
					break
				}
			}
			if len(subscribers[sub.topic]) == 0 {
				delete(subscribers, sub.topic)
			}

		case pub := <-b.publishChannel:
			for _, channel := range subscribers[pub.topic] {
				select {
				case channel <- pub.payload:
				default:
					// Subscriber is not draining, drop.
				}
			}
		}
	}
}

// Stop shuts the broker down and closes every subscriber channel.
func (b *Broker[TTopic, TPayload]) Stop() {
	close(b.stopChannel)
}

// Subscribe registers a subscriber for topic. The returned cancel function
// unsubscribes and closes the channel; it must be called exactly once.
func (b *Broker[TTopic, TPayload]) Subscribe(topic TTopic) (<-chan TPayload, func()) {
	subscriberBuffer := 16
	channel := make(chan TPayload, subscriberBuffer)
	select {
	case b.subscribeChannel <- subscription[TTopic, TPayload]{topic: topic, channel: channel}:
	case <-b.stopChannel:
		close(channel)
	}
	cancel := func() {
		select {
		case b.unsubscribeChannel <- subscription[TTopic, TPayload]{topic: topic, channel: channel}:
		case <-b.stopChannel:
		}
	}
	return channel, cancel
}

// Publish delivers payload to every current subscriber of topic. It never
// blocks on slow subscribers.
func (b *Broker[TTopic, TPayload]) Publish(topic TTopic, payload TPayload) {
	select {
	case b.publishChannel <- publication[TTopic, TPayload]{topic: topic, payload: payload}:
	case <-b.stopChannel:
	}
}
