/*
Package resilience guards calls to the document store with a circuit breaker.

# States

- Closed: calls pass through and failures are counted
- Open: calls fail immediately with ErrCircuitOpen
- Half-Open: a limited number of probe calls decide whether to close again

	Closed --[trip]-> Open --[cooldown]-> Half-Open --[probes ok]-> Closed
	                   ^                      |
	                   +------[probe fails]---+

# Usage

	breaker := resilience.New("docstore", resilience.Settings{
		Cooldown: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
	})

	doc, err := resilience.Do(breaker, func() (*contract.UserPrivateDoc, error) {
		return client.fetch(ctx, uid)
	})
*/
package resilience
