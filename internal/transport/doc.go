// Package transport carries generation results from the device to the
// companion application.
//
// The wire format is a single text line per result:
//
//	LEN:<length>,COMPLEX:<policy>,KEY:<uppercase hex ciphertext>\n
//
// The TCP server services one client at a time. A client sends one command
// line (GET_DATA, CMD_UP, CMD_DOWN or CMD_SELECT) and, for GET_DATA, receives
// the payload line back; the connection is then closed. Reads time out after
// one second so a silent client cannot hold the device.
//
// Access-point bring-up is a collaborator boundary: on a development host
// there is no radio, so StartAccessPoint validates the configuration and logs
// the intent while the TCP listener binds the host network stack instead.
package transport
