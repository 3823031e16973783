// Package hushbox provides a Go client for hushbox, a zero-knowledge
// one-time secret exchange. Secrets are encrypted on the creator's device;
// the server stores only ciphertext and non-secret parameters and can never
// recover the plaintext or the passphrase.
//
// Creating a secret encrypts locally and returns a shareable link plus a
// passphrase, which must travel through separate channels:
//
//	client, err := hushbox.New("https://hush.example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stored, err := client.CreateText(ctx, "the launch code",
//	    hushbox.WithMaxViews(1),
//	    hushbox.WithLifetimeDays(7),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("link:", stored.Link("https://hush.example.com"))
//	fmt.Println("passphrase:", stored.Passphrase)
//
// Revealing runs a two-round-trip handshake: the client fetches the public
// salt, derives a verifier from the passphrase locally, and only submits the
// verifier. A matched fetch consumes one view; after the view budget or the
// expiry is exhausted the server cannot serve the secret again:
//
//	revealed, err := client.Reveal(ctx, secretID, passphrase)
//	switch {
//	case errors.Is(err, hushbox.ErrInvalidPassphrase):
//	    // wrong passphrase; no view consumed
//	case errors.Is(err, hushbox.ErrNotFound):
//	    // unknown, expired, or already viewed
//	case err == nil:
//	    fmt.Println(revealed.Text())
//	}
package hushbox
