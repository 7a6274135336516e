package companion

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/live-labs/kluchnik/internal/crypto"
	"github.com/live-labs/kluchnik/internal/entropy"
	"github.com/live-labs/kluchnik/internal/password"
	"github.com/live-labs/kluchnik/internal/transport"
)

// poolCapacity is the local padding-entropy reserve: four draws per possible
// password character, the same sizing the firmware reserved for its pool.
const poolCapacity = 4 * password.MaxLength

// fetchTimeout bounds one device round trip. A worst-case cycle is 32 key
// draws plus up to one padding draw per rejected character at ~200ms each.
const fetchTimeout = 2 * time.Minute

// Client talks to a Kluchnik device over TCP.
type Client struct {
	Addr string
	Log  *zap.Logger
}

// Fetch asks the device for one generation cycle and returns the parsed
// payload. It blocks for the device's whole entropy-gathering phase.
func (c *Client) Fetch() (transport.Payload, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := net.DialTimeout("tcp", c.Addr, 10*time.Second)
	if err != nil {
		return transport.Payload{}, fmt.Errorf("connect to device: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("GET_DATA\n")); err != nil {
		return transport.Payload{}, fmt.Errorf("request generation: %w", err)
	}
	if err := conn.SetReadDeadline(time.Now().Add(fetchTimeout)); err != nil {
		return transport.Payload{}, fmt.Errorf("set deadline: %w", err)
	}

	log.Info("waiting for device entropy gathering", zap.String("device", c.Addr))
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return transport.Payload{}, fmt.Errorf("read payload: %w", err)
	}

	payload, err := transport.ParsePayload(line)
	if err != nil {
		return transport.Payload{}, err
	}
	log.Info("payload received",
		zap.Int("length", payload.Length),
		zap.Int("complexity", payload.Complexity))
	return payload, nil
}

// DerivePassword decrypts the transported entropy key and runs the shared
// filter/pad derivation over it. src supplies the padding draws; pass nil for
// the default crypto/rand pool.
func DerivePassword(p transport.Payload, src entropy.Source) (string, error) {
	policy := password.Policy(p.Complexity)
	if !policy.Valid() {
		return "", fmt.Errorf("payload declares unknown policy %d", p.Complexity)
	}
	if !password.Length(p.Length).Valid() {
		return "", fmt.Errorf("payload declares length %d outside [%d,%d]",
			p.Length, password.MinLength, password.MaxLength)
	}

	key, err := crypto.DecryptAndUnpad(p.Ciphertext)
	if err != nil {
		return "", fmt.Errorf("decrypt entropy key: %w", err)
	}
	if len(key) != p.Length {
		return "", fmt.Errorf("entropy key is %d bytes, payload declares %d", len(key), p.Length)
	}

	if src == nil {
		src = entropy.NewPool(rand.Reader, poolCapacity)
	}
	return password.Derive(key, policy, p.Length, src), nil
}
