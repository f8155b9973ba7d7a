// Package forwarder provides the embeddable CloudWatch → Loki log
// forwarder: decode a compressed subscription batch, label every record
// through the matcher cascade, group records into label-keyed streams,
// and push them to Grafana Cloud with credentials cached from Secrets
// Manager.
//
// Quick start:
//
//	fw, err := forwarder.New(
//	    forwarder.WithSecretFetcher(fetcher),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res := fw.Handle(ctx, event.AWSLogs.Data)
//	fmt.Println(res.StatusCode, res.Body)
//
// A Forwarder is safe for concurrent use; the credential cache is the
// only shared state and fetches at most once per process. Create once,
// reuse across invocations.
package forwarder
