// Package generation defines the boundary between the video task manager and
// the external video inference providers.
//
// A Provider receives a Request built from the fixed generation parameters,
// the user's prompt and the equipment's reference images, and answers with
// one of two Response variants: Immediate, when the provider returned a
// result (or a status) in the same call, or Accepted, when it only handed
// back a handle for work that continues remotely. Normalize turns either
// variant into the Outcome written to the video record.
package generation
