// Package clock abstracts the time source and one-shot scheduling used by
// goGuard timers.
//
// [Real] delegates to the time package. [Mock] is a manually advanced clock
// whose timers fire synchronously inside [Mock.Add], in deadline order, which
// makes debounce, throttle and interval behavior reproducible in tests.
//
// # What this package must NOT do
//
//   - Hold internal locks while a scheduled callback runs.
//   - Spawn goroutines from [Mock].
package clock
