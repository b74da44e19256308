package api

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Login authenticates the connection. Modern routers (6.43+) accept the
// credentials directly; older ones answer with a =ret= challenge in the
// !done sentence, in which case the pre-6.43 MD5 flow is used.
func (a *API) Login(username, password string) error {
	_, done, err := a.run("/login", Attribute("name", username), Attribute("password", password))
	if err != nil {
		return err
	}

	if challenge, ok := done["ret"]; ok {
		return a.challengeLogin(username, password, challenge)
	}
	return nil
}

// challengeLogin answers a pre-6.43 challenge with
// "00" + hex(md5(0x00 ++ password ++ challenge)).
func (a *API) challengeLogin(username, password, challenge string) error {
	raw, err := hex.DecodeString(challenge)
	if err != nil {
		return fmt.Errorf("decoding login challenge %q: %w", challenge, err)
	}

	sum := md5.New()
	sum.Write([]byte{0})
	sum.Write([]byte(password))
	sum.Write(raw)
	response := "00" + hex.EncodeToString(sum.Sum(nil))

	_, _, err = a.run("/login", Attribute("name", username), Attribute("response", response))
	return err
}
