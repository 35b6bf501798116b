// Package sensor models timed sensors that replay a fixed sequence of raw
// readings and derive a hazard level from the current one.
//
// Series owns the readings and the update cadence. Sensor is a closed variant
// over the four supported kinds (carbon dioxide, noise, occupancy and
// temperature); the kind decides which parameters are carried and which
// hazard formula applies. Every sensor registers itself with the Registrar
// passed to its constructor, which then drives it through AdvanceOneUnit.
package sensor
