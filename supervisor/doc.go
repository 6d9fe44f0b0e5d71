/*
Package supervisor launches named OS child processes, watches for their exits,
and restarts them according to a per-child restart policy, which is a core
concept in creating fault-tolerant applications.

Whether an exited child comes back depends on its restart type (permanent,
transient, temporary), on whether a deliberate shutdown was initiated for it,
and on a per-child sliding-window rate limit that keeps a crash-looping child
from consuming the host.
*/
package supervisor
