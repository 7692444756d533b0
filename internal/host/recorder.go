package host

import "context"

// Recorder is a Host that records actions instead of performing them.
// It is used where the caller, not this process, carries out navigation.
type Recorder struct {
	Actions []string
}

func (r *Recorder) OpenDictionary(_ context.Context, hrid string) error {
	r.Actions = append(r.Actions, "dictionary "+hrid)
	return nil
}

func (r *Recorder) OpenMarketplace(_ context.Context, hrid string) error {
	r.Actions = append(r.Actions, "marketplace "+hrid)
	return nil
}

func (r *Recorder) OpenURL(_ context.Context, url string) error {
	r.Actions = append(r.Actions, "open "+url)
	return nil
}

func (r *Recorder) Notify(_ context.Context, message string) error {
	r.Actions = append(r.Actions, "notify "+message)
	return nil
}
