package visnet

// htmlPage is the page skeleton. The renderer splices the graph dataset and
// page options into the two /*__*__*/null placeholders, so the script block
// stays valid JavaScript even before substitution.
const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>__TITLE__</title>
<script src="https://unpkg.com/vis-network@9.1.9/standalone/umd/vis-network.min.js"></script>
<style>
  html, body { margin: 0; padding: 0; background: #fdfdfd; }
  #network { width: 100%; height: __HEIGHT__; }
</style>
</head>
<body>
<div id="network"></div>
<script>
  const data = /*__GRAPH_DATA__*/null;
  const page = /*__PAGE_OPTIONS__*/null;

  const nodes = new vis.DataSet(data.nodes);
  const edges = new vis.DataSet(data.edges);

  const options = {
    nodes: {
      shape: "dot",
      size: 16,
      font: { size: 14 },
      borderWidth: 1
    },
    edges: {
      // Dynamic smoothing keeps parallel edges visually separate.
      smooth: { enabled: true, type: "dynamic" },
      font: { size: 11, align: "middle" },
      arrows: { to: { enabled: page.directed, scaleFactor: 0.7 } }
    },
    physics: {
      solver: "barnesHut",
      barnesHut: { gravitationalConstant: -3000, springLength: 140 },
      stabilization: { iterations: 200 }
    },
    interaction: { hover: true, tooltipDelay: 120 }
  };

  new vis.Network(document.getElementById("network"), { nodes, edges }, options);
</script>
</body>
</html>
`
