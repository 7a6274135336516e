// Package hal abstracts the Kluchnik board peripherals.
//
// The entropy pipeline talks to hardware only through these interfaces:
//   - Line: a single digital output (counter reset strobe, gate enable)
//   - CounterBus: the 8 parallel output lines of the free-running counter
//   - MotionSensor: a 6-axis accelerometer/gyro queried per gate tick
//   - Clock: monotonic time and microsecond-scale sleeps
//
// A software simulation of the counter and motion sensor is included so the
// full pipeline runs on a development host and in tests without the board.
package hal
